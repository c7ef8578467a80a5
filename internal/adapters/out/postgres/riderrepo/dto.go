// Package riderrepo maps rider profiles, earnings and location pings.
package riderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfileDTO struct {
	UserID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName             string
	Phone                string
	VehicleType          string
	VehicleModel         string
	PlateNumber          string
	LicenseNumber        string
	Status               string
	Rating               float64
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
	TotalEarnings        decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsAvailable          bool
	CurrentLatitude      *float64
	CurrentLongitude     *float64
	LastLocationUpdate   *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ProfileDTO) TableName() string {
	return "rider_profiles"
}

type EarningDTO struct {
	ID       int64           `gorm:"primaryKey"`
	RiderID  uuid.UUID       `gorm:"type:uuid"`
	OrderID  uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Amount   decimal.Decimal `gorm:"type:numeric(10,2)"`
	OrderFee decimal.Decimal `gorm:"type:numeric(10,2)"`
	EarnedAt time.Time
}

func (EarningDTO) TableName() string {
	return "rider_earnings"
}

type LocationDTO struct {
	ID         int64     `gorm:"primaryKey"`
	RiderID    uuid.UUID `gorm:"type:uuid;index"`
	Latitude   float64
	Longitude  float64
	AccuracyM  *float64
	SpeedKmh   *float64
	Heading    *float64
	OrderID    *uuid.UUID `gorm:"type:uuid"`
	RecordedAt time.Time
}

func (LocationDTO) TableName() string {
	return "rider_locations"
}

func profileFromDomain(p *rider.Profile) ProfileDTO {
	dto := ProfileDTO{
		UserID:               p.UserID().Bytes(),
		FullName:             p.FullName(),
		Phone:                p.Phone(),
		VehicleType:          p.Vehicle().Type.String(),
		VehicleModel:         p.Vehicle().Model,
		PlateNumber:          p.Vehicle().PlateNumber,
		LicenseNumber:        p.Vehicle().LicenseNumber,
		Status:               p.Status().String(),
		Rating:               p.Rating(),
		TotalDeliveries:      p.TotalDeliveries(),
		SuccessfulDeliveries: p.SuccessfulDeliveries(),
		FailedDeliveries:     p.FailedDeliveries(),
		TotalEarnings:        p.TotalEarnings(),
		IsAvailable:          p.IsAvailable(),
		LastLocationUpdate:   p.LastLocationUpdate(),
	}
	if loc := p.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.CurrentLatitude, dto.CurrentLongitude = &lat, &lng
	}
	return dto
}

func profileToDomain(dto ProfileDTO) (*rider.Profile, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	vehicleType, err := rider.ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}
	status, err := rider.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	location, err := kernel.OptionalCoordinates(dto.CurrentLatitude, dto.CurrentLongitude)
	if err != nil {
		return nil, err
	}

	return rider.RestoreProfile(rider.ProfileState{
		UserID:   userID,
		FullName: dto.FullName,
		Phone:    dto.Phone,
		Vehicle: rider.Vehicle{
			Type:          vehicleType,
			Model:         dto.VehicleModel,
			PlateNumber:   dto.PlateNumber,
			LicenseNumber: dto.LicenseNumber,
		},
		Status:               status,
		Rating:               dto.Rating,
		TotalDeliveries:      dto.TotalDeliveries,
		SuccessfulDeliveries: dto.SuccessfulDeliveries,
		FailedDeliveries:     dto.FailedDeliveries,
		TotalEarnings:        dto.TotalEarnings,
		IsAvailable:          dto.IsAvailable,
		Location:             location,
		LastLocationUpdate:   dto.LastLocationUpdate,
	})
}

func earningFromDomain(e *rider.Earning) EarningDTO {
	return EarningDTO{
		ID:       e.ID(),
		RiderID:  e.RiderID().Bytes(),
		OrderID:  e.OrderID().Bytes(),
		Amount:   e.Amount(),
		OrderFee: e.OrderFee(),
		EarnedAt: e.EarnedAt(),
	}
}

func locationFromDomain(p rider.LocationPing) LocationDTO {
	dto := LocationDTO{
		RiderID:    p.RiderID.Bytes(),
		Latitude:   p.Coordinates.Latitude(),
		Longitude:  p.Coordinates.Longitude(),
		AccuracyM:  p.AccuracyM,
		SpeedKmh:   p.SpeedKmh,
		Heading:    p.Heading,
		RecordedAt: p.RecordedAt,
	}
	if p.OrderID != nil {
		raw := p.OrderID.Bytes()
		dto.OrderID = &raw
	}
	return dto
}
