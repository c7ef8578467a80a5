// Package services holds domain logic that spans aggregates:
//   - OrderDispatcher checks rider eligibility and applies assignment and reassignment
//   - Settlement credits earnings and delivery stats when an order reaches DELIVERED or FAILED
//   - Tariff prices deliveries by distance and computes the rider share
//   - EstimateArrival turns a distance and vehicle into an ETA
//
// None of these touch storage. Callers load the aggregates inside a unit of work,
// pass them in, and persist whatever changed.
package services
