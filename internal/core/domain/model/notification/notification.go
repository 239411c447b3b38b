package notification

import (
	"errors"
	"fmt"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"
)

var (
	// ErrNotificationIsNotConstructed is returned when a Notification instance
	// was not created through the NewNotification or RestoreNotification factory methods.
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")
)

// Notification is one event addressed to one recipient. Notifications are
// created only as a side effect of a committed state change (an order
// transition or a wallet operation), never standalone.
//
// A notification lives through two independent flags:
//   - sentAt: set once the transport successfully pushed the event; nil means
//     the event is still queued for delivery and will be retried
//   - read: set when the recipient opened the event in the app
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	eventType   Type
	orderID     *kernel.UUID
	payload     map[string]string
	createdAt   time.Time
	read        bool
	sentAt      *time.Time

	isConstructed bool
}

// NewNotification creates an unread, undelivered notification.
func NewNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	eventType Type,
	orderID *kernel.UUID,
	payload map[string]string,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), recipientID.Validate(), eventType.Validate()); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}
	if payload == nil {
		payload = map[string]string{}
	}

	return &Notification{
		id:            id,
		recipientID:   recipientID,
		eventType:     eventType,
		orderID:       orderID,
		payload:       payload,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence,
// including its read and delivery state.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	eventType Type,
	orderID *kernel.UUID,
	payload map[string]string,
	createdAt time.Time,
	read bool,
	sentAt *time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientID, eventType, orderID, payload, createdAt)
	if err != nil {
		return nil, err
	}
	n.read = read
	n.sentAt = sentAt
	return n, nil
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID returns the user the notification is addressed to.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Type returns the notification's event type.
func (n *Notification) Type() Type {
	return n.eventType
}

// OrderID returns the order the notification refers to, or nil for
// wallet events.
func (n *Notification) OrderID() *kernel.UUID {
	return n.orderID
}

// Payload returns the opaque key-value data attached to the event.
func (n *Notification) Payload() map[string]string {
	return n.payload
}

// CreatedAt returns when the notification was produced.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// Read reports whether the recipient has opened the notification.
func (n *Notification) Read() bool {
	return n.read
}

// SentAt returns when the transport delivered the notification,
// or nil while it is still queued.
func (n *Notification) SentAt() *time.Time {
	return n.sentAt
}

// MarkRead flags the notification as opened by the recipient.
func (n *Notification) MarkRead() {
	n.read = true
}

// MarkSent records the successful transport delivery time.
func (n *Notification) MarkSent(at time.Time) {
	n.sentAt = &at
}

// Type is the closed set of notification events the platform emits.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeNewOrder tells the seller a paid order arrived.
	TypeNewOrder

	// TypeWashingOrder tells the washing station an order needs washing.
	TypeWashingOrder

	// TypeDeliveryOrder tells the assigned driver an order awaits pickup.
	TypeDeliveryOrder

	// TypeSaleReport tells the admin a sale was made.
	TypeSaleReport

	// TypeOrderConfirmed tells the buyer their payment went through.
	TypeOrderConfirmed

	// TypeOrderStatusChanged tells the buyer the order moved along its lifecycle.
	TypeOrderStatusChanged

	// TypeWalletToppedUp tells the user their wallet was credited.
	TypeWalletToppedUp

	// TypeWithdrawalRequested tells the admin a withdrawal awaits processing.
	TypeWithdrawalRequested
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:             "unknown",
		TypeNewOrder:            "NEW_ORDER",
		TypeWashingOrder:        "WASHING_ORDER",
		TypeDeliveryOrder:       "DELIVERY_ORDER",
		TypeSaleReport:          "SALE_REPORT",
		TypeOrderConfirmed:      "ORDER_CONFIRMED",
		TypeOrderStatusChanged:  "ORDER_STATUS_CHANGED",
		TypeWalletToppedUp:      "WALLET_TOPPED_UP",
		TypeWithdrawalRequested: "WITHDRAWAL_REQUESTED",
	}
}

func getValidTypeStrings() map[Type]string {
	strings := getTypeStrings()
	delete(strings, TypeUnknown)
	return strings
}

// TypeFromString parses a notification type from its wire representation.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type",
		fmt.Errorf("%q is not a valid notification type", s))
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid notification type", t))
	}
	return nil
}

// String returns the wire name of the type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
