package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type etaResponse struct {
	Minutes int    `json:"minutes"`
	Text    string `json:"text"`
}

type liveLocationResponse struct {
	Latitude   float64      `json:"latitude"`
	Longitude  float64      `json:"longitude"`
	UpdatedAt  time.Time    `json:"updated_at"`
	IsFresh    bool         `json:"is_fresh"`
	DistanceKm *float64     `json:"distance_km,omitempty"`
	DistanceM  *int64       `json:"distance_m,omitempty"`
	ETA        *etaResponse `json:"eta,omitempty"`
}

type trackedRiderResponse struct {
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	VehicleType  string                `json:"vehicle_type"`
	VehicleModel string                `json:"vehicle_model,omitempty"`
	PlateNumber  string                `json:"plate_number,omitempty"`
	Rating       float64               `json:"rating"`
	Location     *liveLocationResponse `json:"location,omitempty"`
}

type trackingResponse struct {
	Number      string                `json:"order_number"`
	Status      string                `json:"status"`
	Pickup      addressResponse       `json:"pickup"`
	Delivery    addressResponse       `json:"delivery"`
	CreatedAt   time.Time             `json:"created_at"`
	AssignedAt  *time.Time            `json:"assigned_at,omitempty"`
	PickedAt    *time.Time            `json:"picked_at,omitempty"`
	DeliveredAt *time.Time            `json:"delivered_at,omitempty"`
	Rider       *trackedRiderResponse `json:"rider,omitempty"`
}

func toTrackingResponse(v queries.OrderTrackingView) trackingResponse {
	resp := trackingResponse{
		Number:      v.Number,
		Status:      v.Status.String(),
		Pickup:      toAddressResponse(v.Pickup),
		Delivery:    toAddressResponse(v.Delivery),
		CreatedAt:   v.CreatedAt,
		AssignedAt:  v.AssignedAt,
		PickedAt:    v.PickedAt,
		DeliveredAt: v.DeliveredAt,
	}
	if v.Rider == nil {
		return resp
	}

	r := v.Rider
	resp.Rider = &trackedRiderResponse{
		Name:         r.Name,
		Phone:        r.MaskedPhone,
		VehicleType:  r.VehicleType.String(),
		VehicleModel: r.VehicleModel,
		PlateNumber:  r.PlateNumber,
		Rating:       r.Rating,
	}
	if live := r.Live; live != nil {
		loc := &liveLocationResponse{
			Latitude:   live.Latitude,
			Longitude:  live.Longitude,
			UpdatedAt:  live.UpdatedAt,
			IsFresh:    live.IsFresh,
			DistanceKm: live.DistanceKm,
			DistanceM:  live.DistanceM,
		}
		if live.ETA != nil {
			loc.ETA = &etaResponse{Minutes: live.ETA.Minutes, Text: live.ETA.Text}
		}
		resp.Rider.Location = loc
	}
	return resp
}

// trackOrder handles GET /api/v1/track/{number}. It is public.
func (s *Server) trackOrder(c echo.Context) error {
	number, err := pathString(c, "number")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderTrackingQuery(number)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrackingResponse(view))
}

type quoteResponse struct {
	DistanceKm float64 `json:"distance_km"`
	Fee        string  `json:"delivery_fee"`
	RiderShare string  `json:"rider_share"`
}

// quoteDeliveryFee handles GET /api/v1/quote, either ?km= or both coordinate pairs.
func (s *Server) quoteDeliveryFee(c echo.Context) error {
	var km, pickupLat, pickupLng, deliveryLat, deliveryLng *float64
	for name, dest := range map[string]**float64{
		"km":           &km,
		"pickup_lat":   &pickupLat,
		"pickup_lng":   &pickupLng,
		"delivery_lat": &deliveryLat,
		"delivery_lng": &deliveryLng,
	} {
		if err := queryParam(c, name, dest); err != nil {
			return err
		}
	}

	var (
		query queries.QuoteDeliveryFeeQuery
		err   error
	)
	if km != nil {
		query, err = queries.NewQuoteDeliveryFeeByDistance(*km)
	} else {
		pickup, perr := kernel.OptionalCoordinates(pickupLat, pickupLng)
		delivery, derr := kernel.OptionalCoordinates(deliveryLat, deliveryLng)
		switch {
		case perr != nil:
			return perr
		case derr != nil:
			return derr
		case pickup == nil || delivery == nil:
			return errs.NewValueIsRequiredError("km or pickup and delivery coordinates")
		}
		query, err = queries.NewQuoteDeliveryFeeBetween(*pickup, *delivery)
	}
	if err != nil {
		return err
	}

	quote, err := s.h.QuoteDeliveryFee.Handle(query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quoteResponse{
		DistanceKm: quote.DistanceKm,
		Fee:        quote.Fee.StringFixed(2),
		RiderShare: quote.RiderShare.StringFixed(2),
	})
}
