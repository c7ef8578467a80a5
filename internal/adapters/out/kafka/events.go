package kafka

import (
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

const (
	OrderCreatedEvent       = "order.created"
	OrderRiderAssignedEvent = "order.rider_assigned"
)

// OrderEvent is the JSON document published for every order notification.
type OrderEvent struct {
	ID          string       `json:"event_id"`
	Type        string       `json:"event_type"`
	OccurredAt  time.Time    `json:"occurred_at"`
	OrderID     string       `json:"order_id"`
	OrderNumber string       `json:"order_number"`
	Status      string       `json:"status"`
	Customer    CustomerInfo `json:"customer"`
	Pickup      string       `json:"pickup_address"`
	Delivery    string       `json:"delivery_address"`
	DeliveryFee string       `json:"delivery_fee"`
	Rider       *RiderInfo   `json:"rider,omitempty"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type RiderInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicle_type"`
	PlateNumber string `json:"plate_number,omitempty"`
}

func newOrderEvent(eventType string, o *order.Order, now time.Time) OrderEvent {
	c := o.Customer()
	return OrderEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		OccurredAt:  now.UTC(),
		OrderID:     o.ID().String(),
		OrderNumber: o.Number(),
		Status:      o.Status().String(),
		Customer:    CustomerInfo{Name: c.Name(), Phone: c.Phone(), Email: c.Email()},
		Pickup:      o.Pickup().Line(),
		Delivery:    o.Delivery().Line(),
		DeliveryFee: o.DeliveryFee().StringFixed(2),
	}
}

func newRiderInfo(p *rider.Profile) *RiderInfo {
	v := p.Vehicle()
	return &RiderInfo{
		ID:          p.UserID().String(),
		Name:        p.FullName(),
		Phone:       p.Phone(),
		VehicleType: v.Type.String(),
		PlateNumber: v.PlateNumber,
	}
}
