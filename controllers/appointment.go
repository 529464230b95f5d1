package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TomTom4/kin/models"
	"github.com/TomTom4/kin/scheduler"
	"github.com/TomTom4/kin/utils"
)

// AppointmentController exposes the scheduler over HTTP.
type AppointmentController struct {
	Scheduler *scheduler.Service
}

func NewAppointmentController(s *scheduler.Service) *AppointmentController {
	return &AppointmentController{Scheduler: s}
}

type createAppointmentRequest struct {
	StartAt         time.Time `json:"start_at"`
	DurationSeconds int64     `json:"duration_seconds"`
	PatientID       string    `json:"patient_id"`
	TherapistID     string    `json:"therapist_id"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartAt     time.Time `json:"start_at"`
	Duration    int64     `json:"duration"`
	PatientID   string    `json:"patient_id"`
	TherapistID string    `json:"therapist_id"`
}

func toResponse(a models.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		Title:       a.Title,
		StartAt:     a.StartAt,
		Duration:    int64(a.Duration / time.Second),
		PatientID:   a.PatientID,
		TherapistID: a.TherapistID,
	}
}

// GetAllAppointments godoc
// @Summary List appointments
// @Description List appointments, optionally filtered by patient, therapist and day
// @Tags appointments
// @Produce json
// @Param patient_id query string false "Patient ID"
// @Param therapist_id query string false "Therapist ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} map[string][]appointmentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /appointments [get]
func (ac *AppointmentController) GetAllAppointments(c *fiber.Ctx) error {
	var day *time.Time
	if raw := c.Query("day"); raw != "" {
		parsed, err := ac.Scheduler.ParseDay(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid day, expected YYYY-MM-DD",
				Error:   err.Error(),
			})
		}
		day = &parsed
	}

	appointments := ac.Scheduler.GetAllAppointments(
		c.Context(),
		c.Query("patient_id"),
		c.Query("therapist_id"),
		day,
	)

	out := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, toResponse(a))
	}
	return c.JSON(fiber.Map{"appointments": out})
}

// CreateAppointment godoc
// @Summary Book an appointment
// @Description Book a slot between a patient and a therapist
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body createAppointmentRequest true "Appointment"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments [post]
func (ac *AppointmentController) CreateAppointment(c *fiber.Ctx) error {
	var req createAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.PatientID == "" || req.TherapistID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "patient_id and therapist_id are required",
		})
	}
	if req.StartAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "start_at is required",
		})
	}

	appointment, err := ac.Scheduler.CreateAppointment(
		c.Context(),
		req.StartAt,
		req.PatientID,
		req.TherapistID,
		time.Duration(req.DurationSeconds)*time.Second,
	)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidSchedule):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid schedule",
				Error:   err.Error(),
			})
		case errors.Is(err, models.ErrOverlappingAppointment):
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Time slot not available",
				Error:   err.Error(),
			})
		case errors.Is(err, models.ErrUnknownUser):
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Patient or therapist not found",
				Error:   err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create appointment",
				Error:   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(toResponse(appointment))
}
