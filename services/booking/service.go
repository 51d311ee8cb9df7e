package booking

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	bookingModel "seat-booking/models/booking"
	"seat-booking/utils"
)

// Domain errors translated to HTTP statuses at the controller boundary.
var (
	ErrSeatTaken = errors.New("seat already booked for this date")
	ErrNotFound  = errors.New("booking not found")
	ErrPastDate  = errors.New("booking date must not be in the past")
)

// Service owns the booking lifecycle. Seat uniqueness per date is enforced by
// the composite unique index on the bookings table, so Create is a single
// conditional insert rather than a check followed by an insert.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create reserves a seat for the intern on the given date. The date is
// normalized to day granularity and must not be before today.
func (s *Service) Create(internID uint, date time.Time, seatNumber, specialRequest string) (*bookingModel.Booking, error) {
	day := utils.BeginningOfDay(date)
	if day.Before(utils.Today()) {
		return nil, ErrPastDate
	}

	b := &bookingModel.Booking{
		InternID:       internID,
		BookingDate:    day,
		SeatNumber:     seatNumber,
		SpecialRequest: specialRequest,
		IsConfirmed:    false,
	}

	if err := s.DB.Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Reload with the owner attached.
	if err := s.DB.Preload("Intern").First(b, b.ID).Error; err != nil {
		return nil, fmt.Errorf("load created booking: %w", err)
	}

	return b, nil
}

// ListForIntern returns every booking owned by the intern.
func (s *Service) ListForIntern(internID uint) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := s.DB.Preload("Intern").
		Where("intern_id = ?", internID).
		Order("booking_date").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListAll returns every booking, optionally restricted to an exact date.
// Unconfirmed bookings come before confirmed ones, then by date.
func (s *Service) ListAll(dateFilter *time.Time) ([]bookingModel.Booking, error) {
	q := s.DB.Preload("Intern").Order("is_confirmed, booking_date")
	if dateFilter != nil {
		q = q.Where("booking_date = ?", utils.BeginningOfDay(*dateFilter))
	}

	var bookings []bookingModel.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list all bookings: %w", err)
	}
	return bookings, nil
}

// ListConfirmed returns confirmed bookings only.
func (s *Service) ListConfirmed() ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := s.DB.Preload("Intern").
		Where("is_confirmed = ?", true).
		Order("booking_date").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	return bookings, nil
}

// Confirm marks the booking accepted. Setting the flag again is a no-op in
// data; callers still re-send the notification each time.
func (s *Service) Confirm(bookingID uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.Preload("Intern").First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	b.IsConfirmed = true
	if err := s.DB.Save(&b).Error; err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	return &b, nil
}

// Cancel deletes the booking permanently.
func (s *Service) Cancel(bookingID uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	if err := s.DB.Delete(&b).Error; err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	return &b, nil
}

// SetAttendance overwrites the attendance status. The closed set of values is
// validated at the facade.
func (s *Service) SetAttendance(bookingID uint, status bookingModel.AttendanceStatus) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	b.AttendanceStatus = status
	if err := s.DB.Save(&b).Error; err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return &b, nil
}

// AttendanceForIntern returns the intern's bookings, optionally restricted to
// the inclusive [start, end] day window.
func (s *Service) AttendanceForIntern(internID uint, start, end *time.Time) ([]bookingModel.Booking, error) {
	q := s.DB.Preload("Intern").Where("intern_id = ?", internID).Order("booking_date")
	if start != nil && end != nil {
		q = q.Where("booking_date >= ? AND booking_date <= ?",
			utils.BeginningOfDay(*start), utils.BeginningOfDay(*end))
	}

	var bookings []bookingModel.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return bookings, nil
}
