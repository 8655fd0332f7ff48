// Package renderer turns ledger data into markdown reports.
//
// Every function returns a plain markdown string; styling for the
// terminal is the caller's concern.
package renderer

import (
	"fmt"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
)

// Record renders a one-line description of a record, used in
// confirmations and deletion prompts.
func Record(r ventas.Record) string {
	line := fmt.Sprintf("%s sold by %s for %s (%s)", r.Product, r.Seller, r.SalePriceMXN, r.Status)
	if r.Status == ventas.PartiallyPaid {
		line += fmt.Sprintf(", %s pending", r.Pending())
	}
	return line
}

// Status renders a payment status with its traffic-light marker, the
// decoration the original sheets used.
func Status(s ventas.PaymentStatus) string {
	switch s {
	case ventas.Unpaid:
		return "🔴 debe"
	case ventas.PartiallyPaid:
		return "🟡 abonado"
	case ventas.Paid:
		return "🟢 pagado"
	default:
		return s.String()
	}
}
