package booking

import (
	"time"

	"seat-booking/models/intern"
)

// Booking reserves one seat for one date. The composite unique index on
// (booking_date, seat_number) is what keeps two interns out of the same seat:
// creation is a single INSERT and a duplicate key means the seat is taken.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	InternID uint          `gorm:"not null;index" json:"intern_id"`
	Intern   intern.Intern `gorm:"foreignKey:InternID" json:"intern"`

	BookingDate    time.Time `gorm:"type:date;not null;uniqueIndex:idx_bookings_date_seat" json:"booking_date"`
	SeatNumber     string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_bookings_date_seat" json:"seat_number"`
	SpecialRequest string    `gorm:"type:text" json:"special_request,omitempty"`

	IsConfirmed      bool             `gorm:"not null;default:false" json:"is_confirmed"`
	AttendanceStatus AttendanceStatus `gorm:"type:varchar(20);default:''" json:"attendance_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
