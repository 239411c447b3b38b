// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the qat marketplace. It implements business
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - PaymentCalculator: computes the ledger entries an order transition requires
//   - NotificationFanout: computes the notification set a transition emits
//   - DriverDispatcher: pluggable policy for assigning drivers to ready orders
//
// All three are pure with respect to storage: they compute effects, and the
// application layer applies them inside the transaction of the state change.
package services
