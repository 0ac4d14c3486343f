package model

import (
	"studyhall/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldCabinID       = "cabin_id"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldCreatedBy     = "created_by"
)

const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// Booking is a ledger row. StartDate and EndDate are calendar dates at midnight UTC.
type Booking struct {
	ID            string    `db:"id"`
	CabinID       string    `db:"cabin_id"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	Status        string    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
	model.Metadata
}

// SortableFields are the columns a booking listing may be ordered by.
func SortableFields() []string {
	return []string{FieldStartDate, FieldEndDate, FieldStatus, FieldPaymentStatus, "created_at"}
}

// OccupyingStatuses are the lifecycle states that can hold a cabin.
func OccupyingStatuses() []string {
	return []string{StatusActive, StatusPending}
}
