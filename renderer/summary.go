package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
)

// SummaryMarkdown renders the aggregated totals of a record selection.
func SummaryMarkdown(title string, t ventas.Totals) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	doc.PlainText(fmt.Sprintf("%d sales", t.Count))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Total", "Amount"},
		Rows: [][]string{
			{"Sales", t.Sales.String()},
			{"Commissions", t.Commissions.String()},
			{"Profit", t.Profit.String()},
			{"Received", t.Received.String()},
			{md.Bold("Pending"), md.Bold(t.Pending.String())},
		},
	})

	return doc.String()
}

// SellersMarkdown renders the per-seller breakdown, best seller first.
func SellersMarkdown(title string, sellers []ventas.SellerTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(sellers) == 0 {
		doc.PlainText("No records.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Seller", "Sales", "Sold"},
	}
	for _, s := range sellers {
		table.Rows = append(table.Rows, []string{
			s.Seller,
			fmt.Sprintf("%d", s.Count),
			s.Sold.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
