package services

import (
	"fmt"

	"logistics/internal/core/domain/model/rider"
)

// ArrivalBufferMinutes is added to every estimate for pickup and parking.
const ArrivalBufferMinutes = 5

type ETA struct {
	Minutes int
	Text    string
}

// EstimateArrival converts a distance into minutes at the vehicle's average speed.
// Vehicles with no known speed travel at rider.DefaultSpeedKmh.
func EstimateArrival(distanceKm float64, vehicle rider.VehicleType) ETA {
	if distanceKm < 0 {
		distanceKm = 0
	}
	minutes := int(distanceKm/vehicle.AverageSpeedKmh()*60) + ArrivalBufferMinutes
	return ETA{Minutes: minutes, Text: formatMinutes(minutes)}
}

func formatMinutes(minutes int) string {
	switch {
	case minutes < 5:
		return "Arriving soon"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours, rest := minutes/60, minutes%60
	text := fmt.Sprintf("%d hour", hours)
	if hours > 1 {
		text += "s"
	}
	if rest > 0 {
		text += fmt.Sprintf(" %d minutes", rest)
	}
	return text
}
