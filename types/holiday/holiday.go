package holiday

import (
	"fmt"
	"time"

	bookingTypes "seat-booking/types/booking"
)

type HolidayCreateRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (h HolidayCreateRequest) Validate() error {
	if h.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(bookingTypes.DateLayout, h.Date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	if h.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// ParsedDate returns the holiday date at UTC midnight. Call Validate first.
func (h HolidayCreateRequest) ParsedDate() time.Time {
	d, _ := time.Parse(bookingTypes.DateLayout, h.Date)
	return d
}
