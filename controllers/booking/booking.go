package booking

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"seat-booking/logger"
	"seat-booking/middleware"
	bookingModel "seat-booking/models/booking"
	internModel "seat-booking/models/intern"
	bookingService "seat-booking/services/booking"
	"seat-booking/services/mailer"
	"seat-booking/types"
	bookingTypes "seat-booking/types/booking"
	"seat-booking/utils"
)

// BookingController exposes the booking lifecycle over REST.
type BookingController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Mailer  mailer.Mailer
	Logger  *logger.AsyncLogger
}

func NewBookingController(db *gorm.DB, svc *bookingService.Service, m mailer.Mailer, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:      db,
		Service: svc,
		Mailer:  m,
		Logger:  asyncLogger,
	}
}

// Store books a seat for the authenticated intern. The confirmation mail is
// dispatched off the request path; a mail failure never fails the booking.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	internID, ok := middleware.InternIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Intern identity not found in token",
		})
	}

	created, err := bc.Service.Create(internID, req.ParsedDate(), req.SeatNumber, req.SpecialRequest)
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrSeatTaken):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Seat already booked for this date.",
			})
		case errors.Is(err, bookingService.ErrPastDate):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Booking date must not be in the past",
			})
		default:
			logger.Error("Failed to create booking", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Server error",
			})
		}
	}

	// Fire and forget: booking success is already decided.
	owner := created.Intern
	go func() {
		if err := bc.Mailer.SendBookingConfirmation(&owner, created); err != nil {
			logger.Error("Failed to send booking confirmation email", err)
		} else {
			logger.Success("Confirmation email with QR code sent to: " + owner.Email)
		}
	}()

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", created.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Seat booked successfully",
		Data:    created,
	})
}

// Index lists the authenticated intern's own bookings.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	internID, ok := middleware.InternIDFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Intern identity not found in token",
		})
	}

	bookings, err := bc.Service.ListForIntern(internID)
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    bookings,
	})
}

// All lists every booking for administrators, optionally filtered to an exact
// date (?date=YYYY-MM-DD). Unconfirmed bookings sort first.
func (bc *BookingController) All(c *fiber.Ctx) error {
	var dateFilter *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := time.Parse(bookingTypes.DateLayout, dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		dateFilter = &d
	}

	bookings, err := bc.Service.ListAll(dateFilter)
	if err != nil {
		logger.Error("Failed to list all bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    annotate(bookings),
	})
}

// Confirmed lists confirmed bookings for administrators.
func (bc *BookingController) Confirmed(c *fiber.Ctx) error {
	bookings, err := bc.Service.ListConfirmed()
	if err != nil {
		logger.Error("Failed to list confirmed bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Confirmed bookings fetched successfully",
		Data:    annotate(bookings),
	})
}

// Confirm marks a booking accepted and re-sends the confirmation notice.
// Confirming an already-confirmed booking is a data no-op but still mails.
func (bc *BookingController) Confirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	confirmed, err := bc.Service.Confirm(id)
	if err != nil {
		if errors.Is(err, bookingService.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to confirm booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	owner := confirmed.Intern
	go func() {
		if err := bc.Mailer.SendConfirmedNotice(&owner, confirmed); err != nil {
			logger.Error("Failed to send confirmation email", err)
		}
	}()

	logger.Success(fmt.Sprintf("Booking %d confirmed", confirmed.ID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking confirmed and email sent",
		Data:    confirmed,
	})
}

// Cancel deletes a booking. Interns may only cancel their own; admins may
// cancel any.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	if !middleware.IsAdminContext(c) {
		internID, ok := middleware.InternIDFromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Intern identity not found in token",
			})
		}
		var count int64
		if err := bc.DB.Model(&bookingModel.Booking{}).
			Where("id = ? AND intern_id = ?", id, internID).
			Count(&count).Error; err != nil {
			logger.Error("Failed to check booking ownership", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Server error",
			})
		}
		if count == 0 {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
	}

	if _, err := bc.Service.Cancel(id); err != nil {
		if errors.Is(err, bookingService.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to cancel booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	logger.Success(fmt.Sprintf("Booking %d canceled", id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking canceled successfully",
	})
}

// UpdateAttendance overwrites a booking's attendance status.
func (bc *BookingController) UpdateAttendance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var req bookingTypes.AttendanceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if _, err := bc.Service.SetAttendance(id, bookingModel.AttendanceStatus(req.Status)); err != nil {
		if errors.Is(err, bookingService.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to update attendance", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Attendance updated successfully",
	})
}

// InternAttendance lists one intern's bookings for administrators, optionally
// windowed by ?startDate=&endDate= (inclusive).
func (bc *BookingController) InternAttendance(c *fiber.Ctx) error {
	internIDStr := c.Params("internId")
	internID64, err := strconv.ParseUint(internIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid intern id",
		})
	}

	var start, end *time.Time
	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr != "" && endStr != "" {
		s, err := time.Parse(bookingTypes.DateLayout, startStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
		e, err := time.Parse(bookingTypes.DateLayout, endStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
		start, end = &s, &e
	}

	records, err := bc.Service.AttendanceForIntern(uint(internID64), start, end)
	if err != nil {
		logger.Error("Failed to fetch intern attendance", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching intern attendance",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Attendance fetched successfully",
		Data:    annotate(records),
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id64, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id64), nil
}

// annotatedBooking pairs a booking with the restricted owner subset exposed
// to administrators.
type annotatedBooking struct {
	ID               uint               `json:"id"`
	BookingDate      time.Time          `json:"booking_date"`
	SeatNumber       string             `json:"seat_number"`
	SpecialRequest   string             `json:"special_request,omitempty"`
	IsConfirmed      bool               `json:"is_confirmed"`
	AttendanceStatus string             `json:"attendance_status"`
	Intern           internModel.Public `json:"intern"`
}

func annotate(bookings []bookingModel.Booking) []annotatedBooking {
	out := make([]annotatedBooking, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, annotatedBooking{
			ID:               b.ID,
			BookingDate:      b.BookingDate,
			SeatNumber:       b.SeatNumber,
			SpecialRequest:   b.SpecialRequest,
			IsConfirmed:      b.IsConfirmed,
			AttendanceStatus: b.AttendanceStatus.String(),
			Intern:           b.Intern.Public(),
		})
	}
	return out
}
