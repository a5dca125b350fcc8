package models

import "time"

// ContactStatus tracks staff handling of a public message.
type ContactStatus string

const (
	ContactNew     ContactStatus = "new"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	Phone     *string       `db:"phone" json:"phone,omitempty"`
	Subject   string        `db:"subject" json:"subject"`
	Message   string        `db:"message" json:"message"`
	Status    ContactStatus `db:"status" json:"status"`
	RepliedBy *string       `db:"replied_by" json:"replied_by,omitempty"`
	RepliedAt *time.Time    `db:"replied_at" json:"replied_at,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// ContactFilter captures filters for listing contacts.
type ContactFilter struct {
	Status *ContactStatus
	Search string
	Page   int
	Limit  int
}
