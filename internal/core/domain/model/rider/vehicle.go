package rider

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

type VehicleType int

const (
	UnknownVehicle VehicleType = iota
	Motorcycle
	Bicycle
	Car
	Van
)

// DefaultSpeedKmh applies to vehicles without a known average speed.
const DefaultSpeedKmh = 20.0

func getVehicleStrings() map[VehicleType]string {
	return map[VehicleType]string{
		UnknownVehicle: "UNKNOWN",
		Motorcycle:     "MOTORCYCLE",
		Bicycle:        "BICYCLE",
		Car:            "CAR",
		Van:            "VAN",
	}
}

// average urban speeds in km/h
func getVehicleSpeeds() map[VehicleType]float64 {
	return map[VehicleType]float64{
		Motorcycle: 25,
		Bicycle:    15,
		Car:        20,
		Van:        18,
	}
}

func ParseVehicleType(s string) (VehicleType, error) {
	for v, name := range getVehicleStrings() {
		if v != UnknownVehicle && strings.EqualFold(name, s) {
			return v, nil
		}
	}
	return UnknownVehicle, errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a valid vehicle type", s))
}

func (v VehicleType) String() string {
	if s, ok := getVehicleStrings()[v]; ok {
		return s
	}
	return "UNKNOWN"
}

func (v VehicleType) Validate() error {
	if v < Motorcycle || v > Van {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

func (v VehicleType) AverageSpeedKmh() float64 {
	if speed, ok := getVehicleSpeeds()[v]; ok {
		return speed
	}
	return DefaultSpeedKmh
}
