// Package order provides domain entities and business logic for order management
// in the qat marketplace. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that owns order identity, items, money breakdown,
//     and the append-only status history
//   - Status: A state machine that enforces valid order status transitions and
//     per-edge role authorization
//   - Item, SaleCode, PaymentMethod: value objects fixed at order creation
//
// Key business rules:
//   - Orders must have valid buyer and seller identifiers and at least one item
//   - Order status follows the lifecycle graph from Pending through Delivered,
//     with the Washing step only for orders that request it
//   - Cancelled and Refunded are terminal; Delivered admits only an admin refund
//     within the configured refund window
//   - Total equals subtotal plus washing total plus delivery fee, fixed at creation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
