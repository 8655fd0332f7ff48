package renderer

import (
	"bytes"
	"iter"

	md "github.com/nao1215/markdown"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
)

// RecordsMarkdown renders a sequence of records as a markdown table,
// one row per sale in ledger order.
func RecordsMarkdown(title string, records iter.Seq2[int, ventas.Record]) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Product", "Seller", "Price", "Received", "Pending", "Status"},
	}
	n := 0
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.RegisteredAt.Format("02/01/2006"),
			r.Product,
			r.Seller,
			r.SalePriceMXN.String(),
			r.Received.String(),
			r.Pending().String(),
			Status(r.Status),
		})
		n++
	}
	if n == 0 {
		doc.PlainText("No records.")
		return doc.String()
	}
	doc.Table(table)

	return doc.String()
}

// SellerListMarkdown renders the distinct seller names of the ledger as
// a bullet list, in ledger order.
func SellerListMarkdown(sellers []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Sellers")
	if len(sellers) == 0 {
		doc.PlainText("No records.")
		return doc.String()
	}
	doc.BulletList(sellers...)

	return doc.String()
}

// WeeksMarkdown renders the distinct week labels of the ledger as an
// ordered list, oldest first.
func WeeksMarkdown(weeks []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Weeks")
	if len(weeks) == 0 {
		doc.PlainText("No records.")
		return doc.String()
	}
	doc.OrderedList(weeks...)

	return doc.String()
}
