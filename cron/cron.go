package cron

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/TomTom4/kin/models"
	"github.com/TomTom4/kin/scheduler"
	"github.com/TomTom4/kin/store"
	"github.com/TomTom4/kin/utils"
)

// reminders tracks which appointments were already mailed, so a slot that
// stays in the lookup window across ticks is reminded once.
type reminders struct {
	book  *store.AppointmentBook
	users scheduler.UserDirectory
	mu    sync.Mutex
	sent  map[string]bool
}

// StartReminderJobs runs a reminder sweep every minute for appointments
// starting in roughly one hour.
func StartReminderJobs(book *store.AppointmentBook, users scheduler.UserDirectory) *cron.Cron {
	r := &reminders{book: book, users: users, sent: make(map[string]bool)}

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", r.sweep); err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
	return c
}

func (r *reminders) sweep() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	upcoming := r.book.List(func(a models.Appointment) bool {
		return !a.StartAt.Before(startWindow) && a.StartAt.Before(endWindow)
	})

	for _, appointment := range upcoming {
		r.mu.Lock()
		already := r.sent[appointment.ID]
		r.sent[appointment.ID] = true
		r.mu.Unlock()
		if already {
			continue
		}

		if err := r.remind(appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %s", appointment.ID)
	}
}

func (r *reminders) remind(appointment models.Appointment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	patient, err := r.users.GetUser(ctx, appointment.PatientID)
	if err != nil {
		return err
	}
	therapist, err := r.users.GetUser(ctx, appointment.TherapistID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Title)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Therapist:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>Duration:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your kin Team</p>
	`, patient.FullName(), therapist.FullName(),
		appointment.StartAt.Format("2006-01-02 15:04:05"),
		appointment.Duration)

	return utils.SendEmail(patient.Email, subject, body)
}
