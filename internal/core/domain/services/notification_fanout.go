package services

import (
	"fmt"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/model/notification"
	"qatmarket/internal/core/domain/model/order"
)

// NotificationFanout is a domain service that computes the set of
// notifications a successful order transition produces. It is a pure
// function of (order, transition): callers persist the returned events in
// the same transaction as the status change, so a rejected transition never
// produces notifications.
//
// Fan-out per edge:
//   - Pending -> Confirmed: NEW_ORDER to the seller, WASHING_ORDER to the
//     washing station when the order requires washing, SALE_REPORT to the
//     admin, and ORDER_CONFIRMED to the buyer
//   - * -> ReadyForDelivery: DELIVERY_ORDER to the driver assigned for pickup
//   - every other transition: ORDER_STATUS_CHANGED to the buyer
//
// On confirmation ORDER_CONFIRMED replaces the buyer's generic status-changed
// event, so the confirm fan-out is exactly one event per interested party.
type NotificationFanout struct {
	adminID kernel.UUID
}

// NewNotificationFanout creates a fan-out service reporting sales to the
// given platform admin account.
func NewNotificationFanout(adminID kernel.UUID) (NotificationFanout, error) {
	if err := adminID.Validate(); err != nil {
		return NotificationFanout{}, err
	}
	return NotificationFanout{adminID: adminID}, nil
}

// Dispatch returns the notifications for the transition from -> to of the
// given order, stamped with the transition time.
func (f NotificationFanout) Dispatch(
	o *order.Order,
	from, to order.Status,
	at time.Time,
) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	orderID := o.ID()
	basePayload := func() map[string]string {
		return map[string]string{
			"sale_code": o.SaleCode().String(),
			"from":      from.String(),
			"status":    to.String(),
		}
	}

	var events []*notification.Notification
	emit := func(recipient kernel.UUID, eventType notification.Type, payload map[string]string) error {
		n, err := notification.NewNotification(kernel.NewUUID(), recipient, eventType, &orderID, payload, at)
		if err != nil {
			return err
		}
		events = append(events, n)
		return nil
	}

	if from == order.Pending && to == order.Confirmed {
		salePayload := basePayload()
		salePayload["total"] = fmt.Sprintf("%.2f", o.Total())

		if err := emit(o.SellerID(), notification.TypeNewOrder, salePayload); err != nil {
			return nil, err
		}
		if o.RequiresWashing() && o.WasherID() != nil {
			if err := emit(*o.WasherID(), notification.TypeWashingOrder, basePayload()); err != nil {
				return nil, err
			}
		}
		if err := emit(f.adminID, notification.TypeSaleReport, salePayload); err != nil {
			return nil, err
		}
		if err := emit(o.BuyerID(), notification.TypeOrderConfirmed, basePayload()); err != nil {
			return nil, err
		}
		return events, nil
	}

	if to == order.ReadyForDelivery && o.DriverID() != nil {
		deliveryPayload := basePayload()
		deliveryPayload["address"] = o.Address()
		if err := emit(*o.DriverID(), notification.TypeDeliveryOrder, deliveryPayload); err != nil {
			return nil, err
		}
	}

	if err := emit(o.BuyerID(), notification.TypeOrderStatusChanged, basePayload()); err != nil {
		return nil, err
	}
	return events, nil
}
