// Package order contains the Order aggregate root and its Status state
// machine for the food-truck ordering domain.
//
// An order is born inside the scheduling engine's transaction, already
// carrying the pickup time computed against the truck cursor, in the
// Processing status. The only lifecycle transition exposed to the rest of
// the system is Processing -> Completed, performed by the mark-ready
// operation. Orders are never deleted in normal operation.
package order
