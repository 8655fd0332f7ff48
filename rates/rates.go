// Package rates fetches the current USD to MXN exchange rate from a JSON
// rate service, best effort: results are cached for an hour and any
// failure falls back to a deployment constant, so the caller's flow never
// blocks on the rate source.
package rates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Source fetches and caches the exchange rate.
type Source struct {
	client   *http.Client
	url      string
	path     string // jsonpath expression locating the rate in the response
	fallback decimal.Decimal
	ttl      time.Duration

	mu     sync.Mutex
	cached decimal.Decimal
	at     time.Time
}

// New creates a source. url is the JSON endpoint, path the jsonpath
// expression locating the MXN-per-USD rate in its response, fallback the
// constant used whenever the endpoint cannot be reached or read.
func New(url, path string, fallback decimal.Decimal, ttl time.Duration) *Source {
	return &Source{
		client:   &http.Client{Timeout: 10 * time.Second},
		url:      url,
		path:     path,
		fallback: fallback,
		ttl:      ttl,
	}
}

// Fallback returns the configured fallback rate.
func (s *Source) Fallback() decimal.Decimal { return s.fallback }

// Rate returns the current MXN-per-USD rate. It serves the cached value
// inside the TTL window, refetches outside it, and degrades to the
// fallback constant on any failure. It never returns an error.
func (s *Source) Rate() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.at.IsZero() && time.Since(s.at) < s.ttl {
		return s.cached
	}

	val, err := s.fetch()
	if err != nil {
		log.Printf("rate fetch failed, using fallback %s: %v", s.fallback, err)
		// a failed fetch is not cached, the next call tries again.
		return s.fallback
	}
	s.cached, s.at = val, time.Now()
	return s.cached
}

func (s *Source) fetch() (decimal.Decimal, error) {
	var jobj any
	if err := jwget(s.client, s.url, &jobj); err != nil {
		return decimal.Zero, err
	}
	val, err := extract(jobj, s.path)
	if err != nil {
		return decimal.Zero, err
	}
	if val <= 0 {
		return decimal.Zero, fmt.Errorf("rate service returned %v", val)
	}
	return decimal.NewFromFloat(val), nil
}

// extract pulls a float out of a decoded JSON document with a jsonpath
// expression.
func extract(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%q is not a number at %q", jval, path)
	}
	return val, nil
}

func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
