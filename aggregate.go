package ventas

import (
	"iter"
	"sort"
)

// Totals sums the monetary columns of a record set.
type Totals struct {
	Count       int
	Sales       Money // sum of sale prices
	Commissions Money // sum of commissions
	Profit      Money // sum of profits
	Received    Money // sum of amounts received
	Pending     Money // Sales minus Received
}

// Summarize sums an iterated record set. An empty set yields zero totals.
func Summarize(records iter.Seq2[int, Record]) Totals {
	t := Totals{
		Sales:       MXN(0),
		Commissions: MXN(0),
		Profit:      MXN(0),
		Received:    MXN(0),
	}
	for _, r := range records {
		t.Count++
		t.Sales = t.Sales.Add(r.SalePriceMXN)
		t.Commissions = t.Commissions.Add(r.CommissionMXN)
		t.Profit = t.Profit.Add(r.ProfitMXN)
		t.Received = t.Received.Add(r.Received)
	}
	t.Pending = t.Sales.Sub(t.Received)
	return t
}

// SellerTotal is one seller's share of a record set.
type SellerTotal struct {
	Seller string
	Count  int
	Sold   Money // sum of sale prices
}

// GroupBySeller produces one row per seller, ordered by total sold
// descending, then by name so the order is deterministic.
func GroupBySeller(records iter.Seq2[int, Record]) []SellerTotal {
	index := make(map[string]int)
	var rows []SellerTotal
	for _, r := range records {
		i, ok := index[r.Seller]
		if !ok {
			i = len(rows)
			index[r.Seller] = i
			rows = append(rows, SellerTotal{Seller: r.Seller, Sold: MXN(0)})
		}
		rows[i].Count++
		rows[i].Sold = rows[i].Sold.Add(r.SalePriceMXN)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Sold.Equal(rows[j].Sold) {
			return rows[j].Sold.LessThan(rows[i].Sold)
		}
		return rows[i].Seller < rows[j].Seller
	})
	return rows
}
