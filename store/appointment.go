// Package store holds the in-memory appointment book. Appointments live
// for the lifetime of the process; there is no durable persistence and no
// deletion, the book only ever grows.
package store

import (
	"sync"
	"time"

	"github.com/TomTom4/kin/models"
)

// Filter is a predicate over stored appointments. Filters compose with
// AND semantics when passed together to List.
type Filter func(models.Appointment) bool

// ByPatient keeps appointments booked for the given patient.
func ByPatient(patientID string) Filter {
	return func(a models.Appointment) bool {
		return a.PatientID == patientID
	}
}

// ByTherapist keeps appointments booked with the given therapist.
func ByTherapist(therapistID string) Filter {
	return func(a models.Appointment) bool {
		return a.TherapistID == therapistID
	}
}

// ByDay keeps appointments whose start falls on the same calendar date as
// day, both read in loc.
func ByDay(day time.Time, loc *time.Location) Filter {
	y, m, d := day.In(loc).Date()
	return func(a models.Appointment) bool {
		ay, am, ad := a.StartAt.In(loc).Date()
		return ay == y && am == m && ad == d
	}
}

// AppointmentBook is an append-only, insertion-ordered collection of
// appointments. A single write lock spans the conflict scan and the
// append, so two conflicting bookings can never both slip past the check
// under concurrent callers.
type AppointmentBook struct {
	mu           sync.RWMutex
	appointments []models.Appointment
}

func NewAppointmentBook() *AppointmentBook {
	return &AppointmentBook{}
}

// Insert books the candidate. It scans every stored appointment in
// insertion order and fails with models.ErrOverlappingAppointment on the
// first conflict; only then is the candidate appended. The scan is O(n)
// per insert, which is fine at in-memory scale but is the first thing to
// revisit if the book ever needs to hold a large history.
func (b *AppointmentBook) Insert(candidate models.Appointment) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.appointments {
		if candidate.OverlapsWith(existing) {
			return models.ErrOverlappingAppointment
		}
	}
	b.appointments = append(b.appointments, candidate)
	return nil
}

// List returns the appointments matching every given filter, in insertion
// order. The result is a fresh slice; callers cannot reach the book's
// internal state through it.
func (b *AppointmentBook) List(filters ...Filter) []models.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Appointment, 0, len(b.appointments))
	for _, a := range b.appointments {
		if matches(a, filters) {
			out = append(out, a)
		}
	}
	return out
}

// Len reports how many appointments have been booked so far.
func (b *AppointmentBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.appointments)
}

func matches(a models.Appointment, filters []Filter) bool {
	for _, keep := range filters {
		if !keep(a) {
			return false
		}
	}
	return true
}
