package ventas

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// this file handles the import/export format: the CSV layout of the
// legacy sheet, Spanish headers included, so a ledger can be moved in and
// out of a spreadsheet without losing anything.

// registeredAtFormat is how the sheet writes the creation timestamp.
const registeredAtFormat = "02/01/2006 15:04"

var csvHeader = []string{
	"ID",
	"FECHA_REGISTRO",
	"PRODUCTO",
	"VENDEDORA",
	"COMPRADORA",
	"TIENDA",
	"COSTO_USD",
	"COSTO_USD_IMPUESTO",
	"TIPO_CAMBIO",
	"COMISION_PAGADA_MXN",
	"COSTO_TOTAL_MXN",
	"PRECIO_VENTA",
	"GANANCIA_MXN",
	"EQUIVALENTE_USD",
	"RANGO_SEMANA",
	"ESTADO_PAGO",
	"MONTO_RECIBIDO",
}

// ExportCSV writes the ledger in the sheet's CSV layout. Derived
// display-only values (the pending amount) are never exported.
func ExportCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range l.Records() {
		row := []string{
			r.ID,
			r.RegisteredAt.Format(registeredAtFormat),
			r.Product,
			r.Seller,
			r.Buyer,
			r.Store,
			r.CostUSD.Decimal().String(),
			r.CostUSDTaxed.Decimal().String(),
			r.RateUsed.String(),
			r.CommissionMXN.Decimal().String(),
			r.TotalCostMXN.Decimal().String(),
			r.SalePriceMXN.Decimal().String(),
			r.ProfitMXN.Decimal().String(),
			r.USDEquivalent.Decimal().String(),
			r.Week,
			r.Status.String(),
			r.Received.Decimal().String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write record %q: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads a sheet export into a ledger. Headers are matched by
// name so column order does not matter and unknown columns are ignored.
// Numeric cells are parsed leniently, like the sheet itself did; rows
// without an ID (legacy sheets predate surrogate keys) get a fresh one.
func ImportCSV(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	ledger := NewLedger()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV line %d: %w", line, err)
		}

		rec := Record{
			ID:            cell(row, "ID"),
			Product:       cell(row, "PRODUCTO"),
			Seller:        cell(row, "VENDEDORA"),
			Buyer:         cell(row, "COMPRADORA"),
			Store:         cell(row, "TIENDA"),
			CostUSD:       USD(LenientDecimal(cell(row, "COSTO_USD"))),
			CostUSDTaxed:  USD(LenientDecimal(cell(row, "COSTO_USD_IMPUESTO"))),
			RateUsed:      LenientDecimal(cell(row, "TIPO_CAMBIO")),
			CommissionMXN: MXN(LenientDecimal(cell(row, "COMISION_PAGADA_MXN"))),
			TotalCostMXN:  MXN(LenientDecimal(cell(row, "COSTO_TOTAL_MXN"))),
			SalePriceMXN:  MXN(LenientDecimal(cell(row, "PRECIO_VENTA"))),
			ProfitMXN:     MXN(LenientDecimal(cell(row, "GANANCIA_MXN"))),
			USDEquivalent: USD(LenientDecimal(cell(row, "EQUIVALENTE_USD"))),
			Week:          cell(row, "RANGO_SEMANA"),
			Received:      MXN(LenientDecimal(cell(row, "MONTO_RECIBIDO"))),
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if at, err := time.Parse(registeredAtFormat, cell(row, "FECHA_REGISTRO")); err == nil {
			rec.RegisteredAt = at
		}
		status, err := ParsePaymentStatus(cell(row, "ESTADO_PAGO"))
		if err != nil {
			// legacy sheets contain hand-typed statuses; fall back on the amounts.
			status = StatusFor(rec.Received, rec.SalePriceMXN)
		}
		rec.Status = status

		ledger.Append(rec)
	}
	return ledger, nil
}
