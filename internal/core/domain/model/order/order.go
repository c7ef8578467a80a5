package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

const createdNote = "Order created"

// StatusChange is one entry of the order's audit trail. ChangedBy is nil for
// changes made by the system.
type StatusChange struct {
	Status    Status
	ChangedBy *kernel.UUID
	Notes     string
	At        time.Time
}

// Order is the aggregate root for a delivery request. It is never deleted;
// cancellation is a terminal status.
//
// Order follows these invariants:
//   - Status changes go through transition, which stamps milestones and appends a StatusChange
//   - assignedAt, pickedAt and deliveredAt are set once and never cleared
//   - An ASSIGNED order always has a rider
//   - The delivery fee is never negative
type Order struct {
	id            kernel.UUID
	number        string
	customer      Customer
	pickup        Address
	delivery      Address
	pkg           Package
	deliveryFee   decimal.Decimal
	status        Status
	paymentStatus PaymentStatus
	riderID       *kernel.UUID
	proofKey      string
	deliveryNotes string
	createdAt     time.Time
	updatedAt     time.Time
	assignedAt    *time.Time
	pickedAt      *time.Time
	deliveredAt   *time.Time
	// version is the optimistic lock counter persisted with the row
	version int
	// changes not yet written to the status log
	changes []StatusChange
	guard   guard.ConstructorGuard
}

// NewOrder creates a CREATED order with pending payment and records the
// initial "Order created" status change.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ada Obi", "+2348012345678", "")
//	pickup, _ := order.NewAddress("12 Allen Ave, Ikeja", &ikeja)
//	dropoff, _ := order.NewAddress("3 Admiralty Way, Lekki", &lekki)
//	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(now),
//	    customer, pickup, dropoff, order.Package{}, fee, actor.UserID(), now)
func NewOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	pickup Address,
	delivery Address,
	pkg Package,
	deliveryFee decimal.Decimal,
	createdBy *kernel.UUID,
	now time.Time,
) (*Order, error) {
	now = now.UTC()
	o := &Order{
		status:        Created,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setPickup(pickup),
		o.setDelivery(delivery),
		o.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}
	o.pkg = pkg
	o.changes = []StatusChange{{Status: Created, ChangedBy: createdBy, Notes: createdNote, At: now}}
	return o, nil
}

// State is the persisted shape of an order, used by RestoreOrder.
type State struct {
	ID            kernel.UUID
	Number        string
	Customer      Customer
	Pickup        Address
	Delivery      Address
	Package       Package
	DeliveryFee   decimal.Decimal
	Status        Status
	PaymentStatus PaymentStatus
	RiderID       *kernel.UUID
	ProofKey      string
	DeliveryNotes string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AssignedAt    *time.Time
	PickedAt      *time.Time
	DeliveredAt   *time.Time
	Version       int
}

// RestoreOrder rebuilds an order loaded from storage. No status change is recorded.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setCustomer(s.Customer),
		o.setPickup(s.Pickup),
		o.setDelivery(s.Delivery),
		o.setDeliveryFee(s.DeliveryFee),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Status == Assigned && s.RiderID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"rider", fmt.Errorf("order %s is ASSIGNED without a rider", s.Number))
	}
	o.pkg = s.Package
	o.status = s.Status
	o.paymentStatus = s.PaymentStatus
	o.riderID = s.RiderID
	o.proofKey = s.ProofKey
	o.deliveryNotes = s.DeliveryNotes
	o.createdAt = s.CreatedAt
	o.updatedAt = s.UpdatedAt
	o.assignedAt = s.AssignedAt
	o.pickedAt = s.PickedAt
	o.deliveredAt = s.DeliveredAt
	o.version = s.Version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Pickup() Address { return o.pickup }
func (o *Order) Delivery() Address { return o.delivery }
func (o *Order) Package() Package { return o.pkg }
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) ProofKey() string { return o.proofKey }
func (o *Order) DeliveryNotes() string { return o.deliveryNotes }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }
func (o *Order) PickedAt() *time.Time { return o.pickedAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) Version() int { return o.version }

// Rider returns the assigned rider's user id, or nil if unassigned.
func (o *Order) Rider() *kernel.UUID { return o.riderID }

func (o *Order) IsAssignedTo(riderID kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(riderID)
}

// CheckAssignable fails unless the order is still CREATED. It is evaluated before
// the rider is resolved so that a stale assignment fails on the order state.
func (o *Order) CheckAssignable() error {
	if o.status != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("order %s is %s: only CREATED orders can be assigned", o.number, o.status),
		)
	}
	return nil
}

// CheckOpen fails if the order is in a terminal state.
func (o *Order) CheckOpen() error {
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("order %s is %s and can no longer change", o.number, o.status),
		)
	}
	return nil
}

// Assign attaches the rider and moves the order from CREATED to ASSIGNED.
func (o *Order) Assign(riderID kernel.UUID, by *kernel.UUID, note string, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := o.CheckAssignable(); err != nil {
		return err
	}
	o.riderID = &riderID
	o.transition(Assigned, by, note, now)
	return nil
}

// Reassign replaces the rider from any non-terminal state and forces the status
// back to ASSIGNED, even from PICKED or IN_TRANSIT. assignedAt keeps its first value.
func (o *Order) Reassign(riderID kernel.UUID, by *kernel.UUID, note string, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := o.CheckOpen(); err != nil {
		return err
	}
	o.riderID = &riderID
	o.transition(Assigned, by, note, now)
	return nil
}

// Cancel moves any non-terminal order to CANCELLED.
func (o *Order) Cancel(by *kernel.UUID, reason string, now time.Time) error {
	if err := o.CheckOpen(); err != nil {
		return err
	}
	note := "Order cancelled"
	if reason = strings.TrimSpace(reason); reason != "" {
		note = "Order cancelled. Reason: " + reason
	}
	o.transition(Cancelled, by, note, now)
	return nil
}

// UpdateStatus applies a transition from the forward state machine. Non-empty
// notes are also kept as the order's delivery notes.
func (o *Order) UpdateStatus(next Status, by *kernel.UUID, notes string, now time.Time) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return fmt.Errorf("order %s: %w", o.number, err)
	}
	if next == Assigned && o.riderID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider", fmt.Errorf("order %s has no rider to move to ASSIGNED", o.number))
	}
	notes = strings.TrimSpace(notes)
	note := notes
	if note == "" {
		note = "Status updated to " + next.String()
	} else {
		o.deliveryNotes = notes
	}
	o.transition(next, by, note, now)
	return nil
}

// SetPaymentStatus is driven by payment reconciliation and does not touch the lifecycle status.
func (o *Order) SetPaymentStatus(status PaymentStatus, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	o.updatedAt = now.UTC()
	return nil
}

// AttachProof records the object storage key of the delivery proof.
func (o *Order) AttachProof(key string, now time.Time) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.NewValueIsRequiredError("proof key")
	}
	o.proofKey = key
	o.updatedAt = now.UTC()
	return nil
}

// PendingChanges returns the status changes not yet written to the log.
func (o *Order) PendingChanges() []StatusChange {
	out := make([]StatusChange, len(o.changes))
	copy(out, o.changes)
	return out
}

// MarkPersisted is called by the repository after a successful write.
func (o *Order) MarkPersisted(version int) {
	o.version = version
	o.changes = nil
}

func (o *Order) transition(next Status, by *kernel.UUID, note string, now time.Time) {
	now = now.UTC()
	o.status = next
	switch next { //nolint:exhaustive // only milestone statuses carry a timestamp
	case Assigned:
		if o.assignedAt == nil {
			o.assignedAt = &now
		}
	case Picked:
		if o.pickedAt == nil {
			o.pickedAt = &now
		}
	case Delivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &now
		}
	}
	o.updatedAt = now
	o.changes = append(o.changes, StatusChange{Status: next, ChangedBy: by, Notes: note, At: now})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.customer = c
	return nil
}

func (o *Order) setPickup(a Address) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	o.pickup = a
	return nil
}

func (o *Order) setDelivery(a Address) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}
	o.delivery = a
	return nil
}

func (o *Order) setDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", fee))
	}
	o.deliveryFee = fee
	return nil
}
