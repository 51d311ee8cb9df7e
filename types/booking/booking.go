package booking

import (
	"fmt"
	"time"

	bookingModel "seat-booking/models/booking"
)

// DateLayout is the day-granularity wire format for booking and holiday dates.
const DateLayout = "2006-01-02"

type BookingCreateRequest struct {
	Date           string `json:"date"`
	SeatNumber     string `json:"seatNumber"`
	SpecialRequest string `json:"specialRequest,omitempty"`
}

func (b BookingCreateRequest) Validate() error {
	if b.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(DateLayout, b.Date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	if b.SeatNumber == "" {
		return fmt.Errorf("seatNumber is required")
	}
	if len(b.SeatNumber) > 16 {
		return fmt.Errorf("seatNumber must be at most 16 characters")
	}
	return nil
}

// ParsedDate returns the booking date at UTC midnight. Call Validate first.
func (b BookingCreateRequest) ParsedDate() time.Time {
	d, _ := time.Parse(DateLayout, b.Date)
	return d
}

type AttendanceUpdateRequest struct {
	Status string `json:"status"`
}

func (a AttendanceUpdateRequest) Validate() error {
	if a.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !bookingModel.AttendanceStatus(a.Status).IsValid() {
		return fmt.Errorf("status must be one of %v", bookingModel.GetAllAttendanceStatuses())
	}
	return nil
}
