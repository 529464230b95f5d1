// Package scheduler orchestrates appointment booking: it resolves the two
// participants, builds the candidate appointment, validates its schedule
// and commits it to the book.
package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TomTom4/kin/models"
	"github.com/TomTom4/kin/store"
)

// UserDirectory resolves user ids to users. The db package provides the
// gorm-backed implementation; tests plug in a stub.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (models.User, error)
}

type Service struct {
	book  *store.AppointmentBook
	users UserDirectory
	now   func() time.Time
	loc   *time.Location
}

// Option tweaks a Service. Used by tests to freeze the clock.
type Option func(*Service)

// WithClock replaces the time source used for schedule validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the location used to resolve day filters.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func New(book *store.AppointmentBook, users UserDirectory, opts ...Option) *Service {
	s := &Service{
		book:  book,
		users: users,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book exposes the underlying appointment book, for collaborators that
// only read it (the reminder job).
func (s *Service) Book() *store.AppointmentBook {
	return s.book
}

// CreateAppointment books a slot for the given patient and therapist.
// A non-positive duration falls back to models.DefaultDuration. The call
// fails with models.ErrUnknownUser, models.ErrInvalidSchedule or
// models.ErrOverlappingAppointment; on any failure the book is untouched.
func (s *Service) CreateAppointment(ctx context.Context, at time.Time, patientID, therapistID string, duration time.Duration) (models.Appointment, error) {
	patient, err := s.users.GetUser(ctx, patientID)
	if err != nil {
		return models.Appointment{}, err
	}
	therapist, err := s.users.GetUser(ctx, therapistID)
	if err != nil {
		return models.Appointment{}, err
	}

	if duration <= 0 {
		duration = models.DefaultDuration
	}

	now := s.now()
	candidate := models.Appointment{
		ID:          uuid.New().String(),
		Title:       patient.FullName(),
		StartAt:     at,
		Duration:    duration,
		PatientID:   patient.ID,
		TherapistID: therapist.ID,
		CreatedAt:   now,
	}

	if err := candidate.ValidateSchedule(now); err != nil {
		return models.Appointment{}, err
	}
	if err := s.book.Insert(candidate); err != nil {
		return models.Appointment{}, err
	}
	return candidate, nil
}

// GetAllAppointments returns booked appointments in insertion order.
// Empty patientID/therapistID and nil day mean "no filter"; supplied
// filters combine with AND.
func (s *Service) GetAllAppointments(ctx context.Context, patientID, therapistID string, day *time.Time) []models.Appointment {
	var filters []store.Filter
	if therapistID != "" {
		filters = append(filters, store.ByTherapist(therapistID))
	}
	if patientID != "" {
		filters = append(filters, store.ByPatient(patientID))
	}
	if day != nil {
		filters = append(filters, store.ByDay(*day, s.loc))
	}
	return s.book.List(filters...)
}

// ParseDay parses a YYYY-MM-DD query value in the service's location.
func (s *Service) ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, s.loc)
}
