package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type vehicleRequest struct {
	VehicleType   string `json:"vehicle_type"`
	VehicleModel  string `json:"vehicle_model"`
	PlateNumber   string `json:"plate_number"`
	LicenseNumber string `json:"license_number"`
}

func (v vehicleRequest) toVehicle() (rider.Vehicle, error) {
	vehicle := rider.Vehicle{Model: v.VehicleModel, PlateNumber: v.PlateNumber, LicenseNumber: v.LicenseNumber}
	if v.VehicleType != "" {
		t, err := rider.ParseVehicleType(v.VehicleType)
		if err != nil {
			return rider.Vehicle{}, err
		}
		vehicle.Type = t
	}
	return vehicle, nil
}

type registerRiderRequest struct {
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Vehicle   *vehicleRequest `json:"vehicle"`
}

type riderStatusRequest struct {
	Status string `json:"status"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

type locationRequest struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	AccuracyM *float64   `json:"accuracy_m"`
	SpeedKmh  *float64   `json:"speed_kmh"`
	Heading   *float64   `json:"heading"`
	OrderID   *uuid.UUID `json:"order_id"`
}

type availableRiderResponse struct {
	ID                 string     `json:"id"`
	FullName           string     `json:"full_name"`
	Phone              string     `json:"phone"`
	VehicleType        string     `json:"vehicle_type"`
	Rating             float64    `json:"rating"`
	TotalDeliveries    int        `json:"total_deliveries"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	LastLocationUpdate *time.Time `json:"last_location_update,omitempty"`
	IsLocationFresh    bool       `json:"is_location_fresh"`
}

type earningResponse struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Amount      string    `json:"amount"`
	OrderFee    string    `json:"order_fee"`
	EarnedAt    time.Time `json:"earned_at"`
}

type riderEarningsResponse struct {
	RiderID              string            `json:"rider_id"`
	TotalEarnings        string            `json:"total_earnings"`
	TotalDeliveries      int               `json:"total_deliveries"`
	SuccessfulDeliveries int               `json:"successful_deliveries"`
	FailedDeliveries     int               `json:"failed_deliveries"`
	SuccessRate          float64           `json:"success_rate"`
	Earnings             []earningResponse `json:"earnings"`
}

type locationResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AccuracyM  *float64  `json:"accuracy_m,omitempty"`
	SpeedKmh   *float64  `json:"speed_kmh,omitempty"`
	Heading    *float64  `json:"heading,omitempty"`
	OrderID    *string   `json:"order_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// registerRider handles POST /api/v1/riders/register. It is public.
func (s *Server) registerRider(c echo.Context) error {
	var req registerRiderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	in := commands.RegisterRiderInput{
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Vehicle != nil {
		vehicle, err := req.Vehicle.toVehicle()
		if err != nil {
			return err
		}
		in.Vehicle = vehicle
	}

	cmd, err := commands.NewRegisterRiderCommand(in)
	if err != nil {
		return err
	}
	id, err := s.h.RegisterRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id.String(), "status": rider.Pending.String()})
}

func (s *Server) setRiderProfileStatus(c echo.Context) error {
	riderID, err := pathUUID(c, "riderId")
	if err != nil {
		return err
	}
	var req riderStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	status, err := rider.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetRiderProfileStatusCommand(actorFrom(c), riderID, status)
	if err != nil {
		return err
	}
	if err := s.h.SetRiderProfileStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) setRiderAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	available := req.IsAvailable != nil && *req.IsAvailable
	cmd, err := commands.NewSetRiderAvailabilityCommand(actorFrom(c), available)
	if err != nil {
		return err
	}
	if err := s.h.SetRiderAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) updateRiderVehicle(c echo.Context) error {
	var req vehicleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	vehicle, err := req.toVehicle()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateRiderVehicleCommand(actorFrom(c), vehicle)
	if err != nil {
		return err
	}
	if err := s.h.UpdateRiderVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) updateRiderLocation(c echo.Context) error {
	var req locationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.OptionalUUID(req.OrderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateRiderLocationCommand(actorFrom(c), commands.LocationInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		AccuracyM: req.AccuracyM,
		SpeedKmh:  req.SpeedKmh,
		Heading:   req.Heading,
		OrderID:   orderID,
	})
	if err != nil {
		return err
	}
	if err := s.h.UpdateRiderLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getAvailableRiders(c echo.Context) error {
	query, err := queries.NewGetAvailableRidersQuery(actorFrom(c))
	if err != nil {
		return err
	}
	views, err := s.h.GetAvailableRiders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]availableRiderResponse, len(views))
	for i, v := range views {
		resp[i] = availableRiderResponse{
			ID:                 v.ID.String(),
			FullName:           v.FullName,
			Phone:              v.Phone,
			VehicleType:        v.VehicleType.String(),
			Rating:             v.Rating,
			TotalDeliveries:    v.TotalDeliveries,
			Latitude:           v.Latitude,
			Longitude:          v.Longitude,
			LastLocationUpdate: v.LastLocationUpdate,
			IsLocationFresh:    v.IsLocationFresh,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getRiderEarnings(c echo.Context) error {
	riderID, err := pathUUID(c, "riderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetRiderEarningsQuery(actorFrom(c), riderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetRiderEarnings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	earnings := make([]earningResponse, len(view.Earnings))
	for i, e := range view.Earnings {
		earnings[i] = earningResponse{
			OrderID:     e.OrderID.String(),
			OrderNumber: e.OrderNumber,
			Amount:      e.Amount.StringFixed(2),
			OrderFee:    e.OrderFee.StringFixed(2),
			EarnedAt:    e.EarnedAt,
		}
	}
	return c.JSON(http.StatusOK, riderEarningsResponse{
		RiderID:              view.RiderID.String(),
		TotalEarnings:        view.TotalEarnings.StringFixed(2),
		TotalDeliveries:      view.TotalDeliveries,
		SuccessfulDeliveries: view.SuccessfulDeliveries,
		FailedDeliveries:     view.FailedDeliveries,
		SuccessRate:          view.SuccessRate,
		Earnings:             earnings,
	})
}

func (s *Server) getRiderLocationHistory(c echo.Context) error {
	riderID, err := pathUUID(c, "riderId")
	if err != nil {
		return err
	}
	var hours *int
	if err := queryParam(c, "hours", &hours); err != nil {
		return err
	}
	h := 0
	if hours != nil {
		h = *hours
	}

	query, err := queries.NewGetRiderLocationHistoryQuery(actorFrom(c), riderID, h)
	if err != nil {
		return err
	}
	views, err := s.h.GetRiderLocationHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]locationResponse, len(views))
	for i, v := range views {
		resp[i] = locationResponse{
			Latitude:   v.Latitude,
			Longitude:  v.Longitude,
			AccuracyM:  v.AccuracyM,
			SpeedKmh:   v.SpeedKmh,
			Heading:    v.Heading,
			OrderID:    optionalID(v.OrderID),
			RecordedAt: v.RecordedAt,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
