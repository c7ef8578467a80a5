// Package identity holds the user directory entries and the Actor on whose
// behalf a command runs.
//
// Roles are Admin, Manager and Rider. Admins and managers are dispatchers:
// they create, assign, reassign and cancel orders. Riders act only on their own
// profile and on orders assigned to them. The System actor represents internal
// callers such as the payment bridge and scheduled jobs.
package identity
