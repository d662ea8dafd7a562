// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"foodtruck/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TruckRepoFactory provides access to truck repository within a transaction.
	TruckRepoFactory interface {
		TruckRepository() ports.TruckRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SchedulingUoW manages transactions that touch both the truck cursor
	// and orders. The truck row lock taken inside the transaction serializes
	// concurrent scheduling, so the pickup calculation and the order insert
	// commit atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   truckRepo := uow.TruckRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... schedule and persist
	//
	//   err = uow.Commit(ctx)
	SchedulingUoW interface {
		TxManager
		TruckRepoFactory
		OrderRepoFactory
	}

	// SchedulingUoWFactory creates new unit of work instances for scheduling.
	SchedulingUoWFactory interface {
		Create() SchedulingUoW
	}
)
