// Package order implements the Order aggregate: a named purchase by a customer
// from a merchant, its line items, its running total and its lifecycle.
//
// Lifecycle:
//
//	Pending ──> Paid ──> Shipped
//	   │
//	   └──> Cancelled
//
// Items can be added or removed only while the order is Pending. Cancel is
// accepted from every state except Cancelled. Delete is an administrative,
// terminal transition available from every state.
//
// Mutating methods return the domain events they raised. The aggregate keeps
// no event buffer; callers hand the events to the repository together with the
// aggregate so they are stored in the same transaction.
package order
