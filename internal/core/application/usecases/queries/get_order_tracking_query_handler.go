package queries

import (
	"context"
	"math"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

type trackingRow struct {
	Number             string
	Status             string
	PickupAddress      string
	PickupLatitude     *float64
	PickupLongitude    *float64
	DeliveryAddress    string
	DeliveryLatitude   *float64
	DeliveryLongitude  *float64
	CreatedAt          time.Time
	AssignedAt         *time.Time
	PickedAt           *time.Time
	DeliveredAt        *time.Time
	RiderName          *string
	RiderPhone         *string
	VehicleType        *string
	VehicleModel       *string
	PlateNumber        *string
	Rating             *float64
	CurrentLatitude    *float64
	CurrentLongitude   *float64
	LastLocationUpdate *time.Time
}

func (h GetOrderTrackingQueryHandler) Handle(ctx context.Context, query GetOrderTrackingQuery) (OrderTrackingView, error) {
	if err := query.Validate(); err != nil {
		return OrderTrackingView{}, err
	}

	var rows []trackingRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number, o.status,
			o.pickup_address, o.pickup_latitude, o.pickup_longitude,
			o.delivery_address, o.delivery_latitude, o.delivery_longitude,
			o.created_at, o.assigned_at, o.picked_at, o.delivered_at,
			rp.full_name AS rider_name, rp.phone AS rider_phone,
			rp.vehicle_type, rp.vehicle_model, rp.plate_number, rp.rating::float8 AS rating,
			rp.current_latitude, rp.current_longitude, rp.last_location_update
		FROM orders o
		LEFT JOIN rider_profiles rp ON rp.user_id = o.rider_id
		WHERE o.number = ?
	`, query.Number()).Scan(&rows).Error
	if err != nil {
		return OrderTrackingView{}, err
	}
	if len(rows) == 0 {
		return OrderTrackingView{}, errs.NewObjectNotFoundError("order", query.Number())
	}
	return rows[0].toView(time.Now())
}

func (r trackingRow) toView(now time.Time) (OrderTrackingView, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderTrackingView{}, err
	}
	view := OrderTrackingView{
		Number:      r.Number,
		Status:      status,
		Pickup:      AddressView{Line: r.PickupAddress, Latitude: r.PickupLatitude, Longitude: r.PickupLongitude},
		Delivery:    AddressView{Line: r.DeliveryAddress, Latitude: r.DeliveryLatitude, Longitude: r.DeliveryLongitude},
		CreatedAt:   r.CreatedAt,
		AssignedAt:  r.AssignedAt,
		PickedAt:    r.PickedAt,
		DeliveredAt: r.DeliveredAt,
	}
	if r.RiderName == nil {
		return view, nil
	}

	vehicle, err := rider.ParseVehicleType(deref(r.VehicleType))
	if err != nil {
		return OrderTrackingView{}, err
	}
	tracked := &TrackedRider{
		Name:         *r.RiderName,
		MaskedPhone:  MaskPhone(deref(r.RiderPhone)),
		VehicleType:  vehicle,
		VehicleModel: deref(r.VehicleModel),
		PlateNumber:  deref(r.PlateNumber),
	}
	if r.Rating != nil {
		tracked.Rating = *r.Rating
	}
	view.Rider = tracked

	if !status.IsActive() || r.CurrentLatitude == nil || r.CurrentLongitude == nil || r.LastLocationUpdate == nil {
		return view, nil
	}
	live := &LiveLocation{
		Latitude:  *r.CurrentLatitude,
		Longitude: *r.CurrentLongitude,
		UpdatedAt: *r.LastLocationUpdate,
		IsFresh:   rider.IsFresh(r.LastLocationUpdate, now),
	}
	if target := view.Delivery.Coordinates(); target != nil {
		here := AddressView{Latitude: r.CurrentLatitude, Longitude: r.CurrentLongitude}.Coordinates()
		if here != nil {
			km := here.DistanceKm(*target)
			meters := int64(math.Round(km * 1000))
			eta := services.EstimateArrival(km, vehicle)
			live.DistanceKm = &km
			live.DistanceM = &meters
			live.ETA = &eta
		}
	}
	tracked.Live = live
	return view, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
