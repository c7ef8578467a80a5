package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderRow struct {
	ID                 uuid.UUID
	Number             string
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
	DeliveryFee        decimal.Decimal
	Status             string
	PaymentStatus      string
	RiderID            *uuid.UUID
	RiderName          *string
	ProofKey           string
	DeliveryNotes      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	AssignedAt         *time.Time
	PickedAt           *time.Time
	DeliveredAt        *time.Time
}

type statusLogRow struct {
	Status    string
	ChangedBy *uuid.UUID
	Notes     string
	CreatedAt time.Time
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}
	db := h.db.WithContext(ctx)

	var rows []orderRow
	err := db.Raw(`
		SELECT
			o.id, o.number, o.customer_name, o.customer_phone, o.customer_email,
			o.pickup_address, o.pickup_latitude, o.pickup_longitude,
			o.delivery_address, o.delivery_latitude, o.delivery_longitude,
			o.package_description, o.package_weight_kg, o.delivery_fee,
			o.status, o.payment_status, o.rider_id, rp.full_name AS rider_name,
			o.proof_key, o.delivery_notes,
			o.created_at, o.updated_at, o.assigned_at, o.picked_at, o.delivered_at
		FROM orders o
		LEFT JOIN rider_profiles rp ON rp.user_id = o.rider_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	row := rows[0]

	view, err := row.toView()
	if err != nil {
		return OrderView{}, err
	}
	if !query.Actor().CanDispatch() && (view.RiderID == nil || !query.Actor().Is(*view.RiderID)) {
		// Orders of other riders are reported as missing.
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var logs []statusLogRow
	err = db.Raw(`
		SELECT status, changed_by, notes, created_at
		FROM order_status_logs
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, row.ID).Scan(&logs).Error
	if err != nil {
		return OrderView{}, err
	}

	view.Logs = make([]StatusLogView, 0, len(logs))
	for _, l := range logs {
		status, err := order.ParseStatus(l.Status)
		if err != nil {
			return OrderView{}, err
		}
		changedBy, err := kernel.OptionalUUID(l.ChangedBy)
		if err != nil {
			return OrderView{}, err
		}
		view.Logs = append(view.Logs, StatusLogView{
			Status:    status,
			ChangedBy: changedBy,
			Notes:     l.Notes,
			CreatedAt: l.CreatedAt,
		})
	}
	return view, nil
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	riderID, err := kernel.OptionalUUID(r.RiderID)
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}
	paymentStatus, err := order.ParsePaymentStatus(r.PaymentStatus)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:                 id,
		Number:             r.Number,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		CustomerEmail:      r.CustomerEmail,
		Pickup:             AddressView{Line: r.PickupAddress, Latitude: r.PickupLatitude, Longitude: r.PickupLongitude},
		Delivery:           AddressView{Line: r.DeliveryAddress, Latitude: r.DeliveryLatitude, Longitude: r.DeliveryLongitude},
		PackageDescription: r.PackageDescription,
		PackageWeightKg:    r.PackageWeightKg,
		DeliveryFee:        r.DeliveryFee,
		Status:             status,
		PaymentStatus:      paymentStatus,
		RiderID:            riderID,
		HasProof:           r.ProofKey != "",
		DeliveryNotes:      r.DeliveryNotes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		AssignedAt:         r.AssignedAt,
		PickedAt:           r.PickedAt,
		DeliveredAt:        r.DeliveredAt,
	}
	if r.RiderName != nil {
		view.RiderName = *r.RiderName
	}
	return view, nil
}
