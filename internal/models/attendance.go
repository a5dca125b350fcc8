package models

import "time"

// Attendance is a single check-in/check-out record. A nil CheckOutTime means the child is present.
type Attendance struct {
	ID           string     `db:"id" json:"id"`
	ChildID      string     `db:"child_id" json:"child_id"`
	StaffID      string     `db:"staff_id" json:"staff_id"`
	CheckInTime  time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime *time.Time `db:"check_out_time" json:"check_out_time"`
	Notes        *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`

	ChildFirstName string `db:"child_first_name" json:"child_first_name,omitempty"`
	ChildLastName  string `db:"child_last_name" json:"child_last_name,omitempty"`
}

// Open reports whether the row has not been checked out yet.
func (a *Attendance) Open() bool {
	return a.CheckOutTime == nil
}

// AttendanceFilter bounds an attendance history query. To is exclusive.
type AttendanceFilter struct {
	ChildID string
	From    *time.Time
	To      *time.Time
	Page    int
	Limit   int
}

// ChildSummary is the slim child projection used on the daily board.
type ChildSummary struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// AttendanceSummary counts children per daily state.
type AttendanceSummary struct {
	Present  int `json:"present"`
	Departed int `json:"departed"`
	Absent   int `json:"absent"`
	Total    int `json:"total"`
}

// AttendanceDay is the daily board for staff.
type AttendanceDay struct {
	Date     string            `json:"date"`
	Present  []Attendance      `json:"present"`
	Departed []Attendance      `json:"departed"`
	Absent   []ChildSummary    `json:"absent"`
	Summary  AttendanceSummary `json:"summary"`
}
