package ventas

import (
	"context"
	"errors"
)

// ErrNoPendingDelete is returned when Confirm or Cancel is called with no
// deletion requested.
var ErrNoPendingDelete = errors.New("no deletion pending")

// DeleteSession is the two-phase deletion workflow: Request marks a record
// for deletion, Confirm performs it, Cancel forgets it. The pending ID
// lives in the session value, not in ambient state, so a workflow can be
// abandoned without leaking a half-armed delete.
type DeleteSession struct {
	book    *Book
	pending string
}

// NewDeleteSession creates a session over a book.
func NewDeleteSession(book *Book) *DeleteSession {
	return &DeleteSession{book: book}
}

// Request arms the session for the given record ID, replacing any
// previously armed one.
func (s *DeleteSession) Request(id string) { s.pending = id }

// Pending returns the armed record ID, empty when none.
func (s *DeleteSession) Pending() string { return s.pending }

// Confirm deletes the armed record and disarms the session. The table is
// re-read inside the delete, so the record is found by ID even if the
// table was reordered since Request.
func (s *DeleteSession) Confirm(ctx context.Context) error {
	if s.pending == "" {
		return ErrNoPendingDelete
	}
	id := s.pending
	s.pending = ""
	return s.book.Delete(ctx, id)
}

// Cancel disarms the session without deleting anything.
func (s *DeleteSession) Cancel() error {
	if s.pending == "" {
		return ErrNoPendingDelete
	}
	s.pending = ""
	return nil
}
