package models

import "time"

// Child is a record of a child cared for by the daycare.
type Child struct {
	ID                    string    `db:"id" json:"id"`
	FirstName             string    `db:"first_name" json:"first_name"`
	LastName              string    `db:"last_name" json:"last_name"`
	BirthDate             time.Time `db:"birth_date" json:"birth_date"`
	Gender                string    `db:"gender" json:"gender"`
	MedicalInfo           *string   `db:"medical_info" json:"medical_info,omitempty"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	PhotoURL              *string   `db:"photo_url" json:"photo_url,omitempty"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`

	AgeYears  int `db:"-" json:"age_years"`
	AgeMonths int `db:"-" json:"age_months"`
}

// Genders accepted for children.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ChildFilter captures filters for listing children.
type ChildFilter struct {
	Search string
	Gender string
	// ParentID restricts the list to children with an approved enrollment for that parent.
	ParentID string
	Page     int
	Limit    int
}

// WithAge fills the computed age fields relative to now.
func (c *Child) WithAge(now time.Time) *Child {
	c.AgeYears, c.AgeMonths = Age(c.BirthDate, now)
	return c
}

// Age returns completed years and the remaining completed months between birth and now.
func Age(birth, now time.Time) (int, int) {
	if birth.IsZero() || now.Before(birth) {
		return 0, 0
	}
	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months / 12, months % 12
}
