package repositories

import (
	"context"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines read-only access to the processor-owned
// payments table. This service never writes payments.
type PaymentRepository interface {
	ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
}

// PostgresPaymentRepository implements PaymentRepository over GORM
type PostgresPaymentRepository struct {
	db *gorm.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *gorm.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// ListPayments fetches payments matching the filter, newest first
func (r *PostgresPaymentRepository) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	q := r.db.WithContext(ctx).Model(&models.Payment{})

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
		q = q.Where("created_at >= ? AND created_at <= ?", filter.StartDate, filter.EndDate)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
