package holiday

import "time"

// Holiday is an administrator-declared blackout date. There is no update
// operation; holidays are only created and deleted.
type Holiday struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Reason string    `gorm:"type:text;not null" json:"reason"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
