package store_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/TomTom4/kin/models"
	"github.com/TomTom4/kin/store"
)

var day = time.Date(2031, time.June, 2, 0, 0, 0, 0, time.UTC)

func appt(id, patientID, therapistID string, start time.Time) models.Appointment {
	return models.Appointment{
		ID:          id,
		StartAt:     start,
		Duration:    models.DefaultDuration,
		PatientID:   patientID,
		TherapistID: therapistID,
	}
}

func mustInsert(t *testing.T, b *store.AppointmentBook, a models.Appointment) {
	t.Helper()
	if err := b.Insert(a); err != nil {
		t.Fatalf("insert %s: %v", a.ID, err)
	}
}

func TestInsertRejectsConflict(t *testing.T) {
	b := store.NewAppointmentBook()
	mustInsert(t, b, appt("a1", "p1", "t1", day.Add(9*time.Hour)))

	err := b.Insert(appt("a2", "p1", "t1", day.Add(9*time.Hour)))
	if !errors.Is(err, models.ErrOverlappingAppointment) {
		t.Fatalf("expected ErrOverlappingAppointment, got %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("failed insert must not grow the book, len = %d", b.Len())
	}
}

func TestInsertDisjointParticipants(t *testing.T) {
	b := store.NewAppointmentBook()
	mustInsert(t, b, appt("a1", "p1", "t1", day.Add(9*time.Hour)))
	// same instant, completely different pair: never a conflict
	mustInsert(t, b, appt("a2", "p2", "t2", day.Add(9*time.Hour)))

	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestListInsertionOrder(t *testing.T) {
	b := store.NewAppointmentBook()
	// deliberately booked out of chronological order
	starts := []time.Duration{15 * time.Hour, 9 * time.Hour, 12 * time.Hour}
	for i, offset := range starts {
		mustInsert(t, b, appt(fmt.Sprintf("a%d", i), fmt.Sprintf("p%d", i), fmt.Sprintf("t%d", i), day.Add(offset)))
	}

	got := b.List()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, a := range got {
		if want := fmt.Sprintf("a%d", i); a.ID != want {
			t.Errorf("position %d: got %s, want %s", i, a.ID, want)
		}
	}
}

func TestListCopiesOut(t *testing.T) {
	b := store.NewAppointmentBook()
	mustInsert(t, b, appt("a1", "p1", "t1", day.Add(9*time.Hour)))

	got := b.List()
	got[0].ID = "mutated"

	if b.List()[0].ID != "a1" {
		t.Fatal("mutating a List result must not reach the book")
	}
}

func TestFilters(t *testing.T) {
	b := store.NewAppointmentBook()
	nextDay := day.AddDate(0, 0, 1)
	mustInsert(t, b, appt("a1", "p1", "t1", day.Add(9*time.Hour)))
	mustInsert(t, b, appt("a2", "p1", "t2", day.Add(11*time.Hour)))
	mustInsert(t, b, appt("a3", "p2", "t1", day.Add(13*time.Hour)))
	mustInsert(t, b, appt("a4", "p1", "t1", nextDay.Add(9*time.Hour)))

	tests := []struct {
		name    string
		filters []store.Filter
		wantIDs []string
	}{
		{"no filters returns everything", nil, []string{"a1", "a2", "a3", "a4"}},
		{"by patient", []store.Filter{store.ByPatient("p1")}, []string{"a1", "a2", "a4"}},
		{"by therapist", []store.Filter{store.ByTherapist("t1")}, []string{"a1", "a3", "a4"}},
		{"by day", []store.Filter{store.ByDay(day, time.UTC)}, []string{"a1", "a2", "a3"}},
		{
			"patient and therapist and day",
			[]store.Filter{store.ByPatient("p1"), store.ByTherapist("t1"), store.ByDay(day, time.UTC)},
			[]string{"a1"},
		},
		{"unknown patient", []store.Filter{store.ByPatient("nobody")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.List(tt.filters...)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, a := range got {
				if a.ID != tt.wantIDs[i] {
					t.Errorf("position %d: got %s, want %s", i, a.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

// Filters are independent predicates, so combining them must equal the
// intersection of the single-filter results.
func TestFilterConjunction(t *testing.T) {
	b := store.NewAppointmentBook()
	mustInsert(t, b, appt("a1", "p1", "t1", day.Add(9*time.Hour)))
	mustInsert(t, b, appt("a2", "p1", "t2", day.Add(11*time.Hour)))
	mustInsert(t, b, appt("a3", "p2", "t1", day.Add(13*time.Hour)))

	byPatient := b.List(store.ByPatient("p1"))
	byTherapist := b.List(store.ByTherapist("t1"))
	both := b.List(store.ByPatient("p1"), store.ByTherapist("t1"))

	inPatient := map[string]bool{}
	for _, a := range byPatient {
		inPatient[a.ID] = true
	}
	var intersection []string
	for _, a := range byTherapist {
		if inPatient[a.ID] {
			intersection = append(intersection, a.ID)
		}
	}

	if len(both) != len(intersection) {
		t.Fatalf("combined filter returned %d, intersection has %d", len(both), len(intersection))
	}
	for i, a := range both {
		if a.ID != intersection[i] {
			t.Errorf("position %d: got %s, want %s", i, a.ID, intersection[i])
		}
	}
}

// Insert holds one lock across the conflict scan and the append, so out of
// N identical concurrent candidates exactly one may win.
func TestInsertConcurrentConflicts(t *testing.T) {
	b := store.NewAppointmentBook()
	start := day.Add(9 * time.Hour)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- b.Insert(appt(fmt.Sprintf("a%d", i), "p1", "t1", start))
		}(i)
	}
	wg.Wait()
	close(errs)

	var won int
	for err := range errs {
		if err == nil {
			won++
		} else if !errors.Is(err, models.ErrOverlappingAppointment) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("%d inserts won the race, want exactly 1", won)
	}
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
}
