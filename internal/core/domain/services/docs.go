// Package services provides domain services for the food-truck ordering
// system. It implements business logic that doesn't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - PrepTimeEstimator: A domain service computing how long one order keeps
//     the truck busy, from the ordered quantities and the configured per-unit
//     service times
package services
