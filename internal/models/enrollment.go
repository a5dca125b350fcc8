package models

import "time"

// EnrollmentStatus tracks the lifecycle of a parent/child link.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment links a parent account to a child.
type Enrollment struct {
	ID             string           `db:"id" json:"id"`
	ParentID       string           `db:"parent_id" json:"parent_id"`
	ChildID        string           `db:"child_id" json:"child_id"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	EnrollmentDate time.Time        `db:"enrollment_date" json:"enrollment_date"`
	Notes          *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`

	ChildFirstName  string `db:"child_first_name" json:"child_first_name,omitempty"`
	ChildLastName   string `db:"child_last_name" json:"child_last_name,omitempty"`
	ParentFirstName string `db:"parent_first_name" json:"parent_first_name,omitempty"`
	ParentLastName  string `db:"parent_last_name" json:"parent_last_name,omitempty"`
	ParentEmail     string `db:"parent_email" json:"parent_email,omitempty"`
}

// EnrollmentFilter captures filters for listing enrollments.
type EnrollmentFilter struct {
	Status   *EnrollmentStatus
	ChildID  string
	ParentID string
	Page     int
	Limit    int
}
