// Package ventas is the bookkeeping engine of a small resale business: it
// records sales (product, seller, buyer, cost in USD, sale price in MXN),
// derives cost, commission, and profit under a configured pricing policy,
// tracks how much of each sale has been collected, and aggregates weekly
// summaries per seller.
//
// The ledger lives in an external table with no transaction concept:
// every mutation is a read-modify-write whole-table overwrite, driven by
// [Book]. Reads retry and degrade to an empty table; write failures always
// propagate.
package ventas
