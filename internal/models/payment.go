package models

import "time"

// Payment statuses as written by the payment processor.
const (
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment is a record in the processor-owned payments table. This service
// only reads it; creation and status transitions happen upstream.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"userId" gorm:"index"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status" gorm:"index"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
}

// PaymentFilter narrows an analytics fetch. Zero values mean "no filter".
type PaymentFilter struct {
	UserID        string
	StartDate     time.Time
	EndDate       time.Time
	PaymentMethod string
	Status        string
	Limit         int
}
