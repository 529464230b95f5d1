package models

import (
	"errors"
	"time"
)

// DefaultDuration is used when a booking request does not specify one.
const DefaultDuration = 30 * time.Minute

var (
	// ErrInvalidSchedule rejects appointments whose start lies in the past.
	ErrInvalidSchedule = errors.New("date and time invalid: you need to set up an appointment somewhere from now and the future")
	// ErrOverlappingAppointment rejects appointments that collide with an
	// already booked slot for the same patient or therapist.
	ErrOverlappingAppointment = errors.New("invalid appointment: the appointment demands provided overlap")
)

// Appointment is a booked slot between one patient and one therapist.
// It is built once by the scheduler and never mutated afterwards; the
// store only hands out copies.
type Appointment struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	StartAt     time.Time     `json:"start_at"`
	Duration    time.Duration `json:"duration"`
	PatientID   string        `json:"patient_id"`
	TherapistID string        `json:"therapist_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ValidateSchedule checks that the appointment does not start in the past.
// The comparison is strict: a start exactly equal to now passes.
func (a Appointment) ValidateSchedule(now time.Time) error {
	if a.StartAt.Before(now) {
		return ErrInvalidSchedule
	}
	return nil
}

// OverlapsWith reports whether a conflicts with an existing appointment.
// Two appointments conflict when they share a patient or a therapist and
// a's start falls within [existing.StartAt, existing.StartAt+Duration],
// inclusive on both ends.
//
// Only a's start is tested against the existing span, never the reverse.
// An appointment that fully contains an existing one without starting
// inside it is therefore not flagged. Known quirk of the booking rules;
// do not make the check symmetric without a product decision.
func (a Appointment) OverlapsWith(existing Appointment) bool {
	if a.PatientID != existing.PatientID && a.TherapistID != existing.TherapistID {
		return false
	}
	end := existing.StartAt.Add(existing.Duration)
	return !a.StartAt.Before(existing.StartAt) && !a.StartAt.After(end)
}
