// Package order provides the Order aggregate root and its status state machine.
//
// States and allowed transitions:
//
//	CREATED -> ASSIGNED -> ACCEPTED -> PICKED -> IN_TRANSIT -> DELIVERED
//	CREATED, ASSIGNED -> CANCELLED
//	ACCEPTED, PICKED, IN_TRANSIT -> FAILED
//
// DELIVERED, FAILED and CANCELLED are terminal.
//
// Key business rules:
//   - Only CREATED orders may be assigned
//   - Reassignment is allowed from any non-terminal state and forces ASSIGNED
//   - Cancellation is allowed from any non-terminal state
//   - assigned_at, picked_at and delivered_at are stamped once, on first entry
//   - Every status change appends exactly one StatusChange, including creation
//
// Pending status changes are drained by the repository when the order is
// written, so the status write and the log append share one transaction.
package order
