package domain

import "errors"

// AppointmentStatus represents the lifecycle state of a booking.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrAppointmentNotFound = errors.New("appointment not found")

// CanTransitionTo reports whether a transition from the current status to
// next is valid. Staying on the same status is always allowed so that
// partial updates (time, staff assignment) don't need a status change.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a booked session. StaffID references a User with role
// staff by identifier only; absent means unassigned.
type Appointment struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	Date       string            `json:"date" bson:"date"` // YYYY-MM-DD
	Time       string            `json:"time" bson:"time"`
	ClientName string            `json:"client_name" bson:"client_name"`
	Status     AppointmentStatus `json:"status" bson:"status"`
	Type       string            `json:"type" bson:"type"`
	StaffID    string            `json:"staff_id,omitempty" bson:"staff_id,omitempty"`
}
