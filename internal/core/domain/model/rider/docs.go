// Package rider models the rider profile that accompanies every Rider-role
// user, and the earnings credited to it on delivery.
//
// Key business rules:
//   - Only ACTIVE and available riders are eligible for assignment
//   - total deliveries always equals successful plus failed deliveries
//   - Stats and earnings change only through settlement
//   - Availability, location and vehicle details are managed by the rider
//   - A location is fresh for five minutes after the last ping
package rider
