package intern

import "time"

// Role values embedded in the session token and checked by the middleware.
const (
	RoleIntern = "intern"
	RoleAdmin  = "admin"
)

// Intern is the persisted account record. Password is empty for accounts
// created through Google login until the profile is completed.
type Intern struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	InternID  string `gorm:"type:varchar(64);not null;unique" json:"intern_id"`
	FirstName string `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(255);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(320);not null;unique" json:"email"`
	Password  string `gorm:"type:varchar(255)" json:"-"`
	Role      string `gorm:"type:varchar(20);not null;default:intern" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Public is the restricted subset of intern fields attached to booking
// listings for administrators.
type Public struct {
	ID        uint   `json:"id"`
	InternID  string `json:"intern_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (i *Intern) Public() Public {
	return Public{
		ID:        i.ID,
		InternID:  i.InternID,
		FirstName: i.FirstName,
		LastName:  i.LastName,
		Email:     i.Email,
	}
}
