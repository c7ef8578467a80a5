package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetAvailableRidersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableRidersQueryHandler(db *gorm.DB) GetAvailableRidersQueryHandler {
	return GetAvailableRidersQueryHandler{db: db}
}

// Handle orders riders by rating, then by completed deliveries.
func (h GetAvailableRidersQueryHandler) Handle(ctx context.Context, query GetAvailableRidersQuery) ([]AvailableRiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			user_id, full_name, phone, vehicle_type, rating::float8, total_deliveries,
			current_latitude, current_longitude, last_location_update
		FROM rider_profiles
		WHERE status = ? AND is_available
		ORDER BY rating DESC, total_deliveries DESC, full_name
	`, rider.Active.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	riders := make([]AvailableRiderView, 0)
	for rows.Next() {
		var (
			view    AvailableRiderView
			id      uuid.UUID
			vehicle string
		)
		err = rows.Scan(
			&id,
			&view.FullName,
			&view.Phone,
			&vehicle,
			&view.Rating,
			&view.TotalDeliveries,
			&view.Latitude,
			&view.Longitude,
			&view.LastLocationUpdate,
		)
		if err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.VehicleType, err = rider.ParseVehicleType(vehicle); err != nil {
			return nil, err
		}
		view.IsLocationFresh = rider.IsFresh(view.LastLocationUpdate, now)
		riders = append(riders, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return riders, nil
}

type GetRiderEarningsQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderEarningsQueryHandler(db *gorm.DB) GetRiderEarningsQueryHandler {
	return GetRiderEarningsQueryHandler{db: db}
}

type riderStatsRow struct {
	TotalEarnings        decimal.Decimal
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
}

type earningRow struct {
	OrderID     uuid.UUID
	OrderNumber string
	Amount      decimal.Decimal
	OrderFee    decimal.Decimal
	EarnedAt    time.Time
}

func (h GetRiderEarningsQueryHandler) Handle(ctx context.Context, query GetRiderEarningsQuery) (RiderEarningsView, error) {
	if err := query.Validate(); err != nil {
		return RiderEarningsView{}, err
	}
	db := h.db.WithContext(ctx)
	riderID := query.RiderID().Bytes()

	var stats []riderStatsRow
	err := db.Raw(`
		SELECT total_earnings, total_deliveries, successful_deliveries, failed_deliveries
		FROM rider_profiles
		WHERE user_id = ?
	`, riderID).Scan(&stats).Error
	if err != nil {
		return RiderEarningsView{}, err
	}
	if len(stats) == 0 {
		return RiderEarningsView{}, errs.NewObjectNotFoundError("rider profile", query.RiderID())
	}

	var earnings []earningRow
	err = db.Raw(`
		SELECT e.order_id, o.number AS order_number, e.amount, e.order_fee, e.earned_at
		FROM rider_earnings e
		JOIN orders o ON o.id = e.order_id
		WHERE e.rider_id = ?
		ORDER BY e.earned_at DESC, e.id DESC
	`, riderID).Scan(&earnings).Error
	if err != nil {
		return RiderEarningsView{}, err
	}

	s := stats[0]
	view := RiderEarningsView{
		RiderID:              query.RiderID(),
		TotalEarnings:        s.TotalEarnings,
		TotalDeliveries:      s.TotalDeliveries,
		SuccessfulDeliveries: s.SuccessfulDeliveries,
		FailedDeliveries:     s.FailedDeliveries,
		SuccessRate:          rider.SuccessRateOf(s.SuccessfulDeliveries, s.TotalDeliveries),
		Earnings:             make([]EarningView, 0, len(earnings)),
	}
	for _, e := range earnings {
		orderID, err := kernel.UUIDFromBytes(e.OrderID[:])
		if err != nil {
			return RiderEarningsView{}, err
		}
		view.Earnings = append(view.Earnings, EarningView{
			OrderID:     orderID,
			OrderNumber: e.OrderNumber,
			Amount:      e.Amount,
			OrderFee:    e.OrderFee,
			EarnedAt:    e.EarnedAt,
		})
	}
	return view, nil
}

type GetRiderLocationHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderLocationHistoryQueryHandler(db *gorm.DB) GetRiderLocationHistoryQueryHandler {
	return GetRiderLocationHistoryQueryHandler{db: db}
}

type locationRow struct {
	Latitude   float64
	Longitude  float64
	AccuracyM  *float64
	SpeedKmh   *float64
	Heading    *float64
	OrderID    *uuid.UUID
	RecordedAt time.Time
}

func (h GetRiderLocationHistoryQueryHandler) Handle(ctx context.Context, query GetRiderLocationHistoryQuery) ([]LocationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	since := time.Now().Add(-time.Duration(query.Hours()) * time.Hour)
	var rows []locationRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude, accuracy_m, speed_kmh, heading, order_id, recorded_at
		FROM rider_locations
		WHERE rider_id = ? AND recorded_at >= ?
		ORDER BY recorded_at DESC, id DESC
	`, query.RiderID().Bytes(), since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]LocationView, 0, len(rows))
	for _, r := range rows {
		orderID, err := kernel.OptionalUUID(r.OrderID)
		if err != nil {
			return nil, err
		}
		history = append(history, LocationView{
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			AccuracyM:  r.AccuracyM,
			SpeedKmh:   r.SpeedKmh,
			Heading:    r.Heading,
			OrderID:    orderID,
			RecordedAt: r.RecordedAt,
		})
	}
	return history, nil
}
