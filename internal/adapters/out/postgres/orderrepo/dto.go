// Package orderrepo maps order aggregates and their status log to the orders
// and order_status_logs tables.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number             string    `gorm:"uniqueIndex"`
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	PickupAddress      string
	PickupLatitude     *float64
	PickupLongitude    *float64
	DeliveryAddress    string
	DeliveryLatitude   *float64
	DeliveryLongitude  *float64
	PackageDescription string
	PackageWeightKg    *float64
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(10,2)"`
	Status             string
	PaymentStatus      string
	RiderID            *uuid.UUID `gorm:"type:uuid;index"`
	ProofKey           string
	DeliveryNotes      string
	CreatedAt          time.Time
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
	AssignedAt         *time.Time
	PickedAt           *time.Time
	DeliveredAt        *time.Time
	Version            int
}

func (OrderDTO) TableName() string {
	return "orders"
}

// StatusLogDTO is an append-only audit row.
type StatusLogDTO struct {
	ID        int64     `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string
	ChangedBy *uuid.UUID `gorm:"type:uuid"`
	Notes     string
	CreatedAt time.Time
}

func (StatusLogDTO) TableName() string {
	return "order_status_logs"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                 o.ID().Bytes(),
		Number:             o.Number(),
		CustomerName:       o.Customer().Name(),
		CustomerPhone:      o.Customer().Phone(),
		CustomerEmail:      o.Customer().Email(),
		PickupAddress:      o.Pickup().Line(),
		DeliveryAddress:    o.Delivery().Line(),
		PackageDescription: o.Package().Description(),
		PackageWeightKg:    o.Package().WeightKg(),
		DeliveryFee:        o.DeliveryFee(),
		Status:             o.Status().String(),
		PaymentStatus:      o.PaymentStatus().String(),
		RiderID:            rawUUID(o.Rider()),
		ProofKey:           o.ProofKey(),
		DeliveryNotes:      o.DeliveryNotes(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		AssignedAt:         o.AssignedAt(),
		PickedAt:           o.PickedAt(),
		DeliveredAt:        o.DeliveredAt(),
		Version:            o.Version(),
	}
	dto.PickupLatitude, dto.PickupLongitude = splitCoordinates(o.Pickup().Coordinates())
	dto.DeliveryLatitude, dto.DeliveryLongitude = splitCoordinates(o.Delivery().Coordinates())
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}
	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone, dto.CustomerEmail)
	if err != nil {
		return nil, err
	}
	pickup, err := toAddress(dto.PickupAddress, dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}
	delivery, err := toAddress(dto.DeliveryAddress, dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}
	pkg, err := order.NewPackage(dto.PackageDescription, dto.PackageWeightKg)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:            id,
		Number:        dto.Number,
		Customer:      customer,
		Pickup:        pickup,
		Delivery:      delivery,
		Package:       pkg,
		DeliveryFee:   dto.DeliveryFee,
		Status:        status,
		PaymentStatus: paymentStatus,
		RiderID:       riderID,
		ProofKey:      dto.ProofKey,
		DeliveryNotes: dto.DeliveryNotes,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		AssignedAt:    dto.AssignedAt,
		PickedAt:      dto.PickedAt,
		DeliveredAt:   dto.DeliveredAt,
		Version:       dto.Version,
	})
}

func changesToDTOs(orderID uuid.UUID, changes []order.StatusChange) []StatusLogDTO {
	logs := make([]StatusLogDTO, 0, len(changes))
	for _, c := range changes {
		logs = append(logs, StatusLogDTO{
			OrderID:   orderID,
			Status:    c.Status.String(),
			ChangedBy: rawUUID(c.ChangedBy),
			Notes:     c.Notes,
			CreatedAt: c.At,
		})
	}
	return logs
}

func toAddress(line string, lat, lng *float64) (order.Address, error) {
	coords, err := kernel.OptionalCoordinates(lat, lng)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(line, coords)
}

func splitCoordinates(c *kernel.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Latitude(), c.Longitude()
	return &lat, &lng
}

func rawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
