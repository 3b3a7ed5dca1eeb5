package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
)

// AnalyticsHandler serves payment analytics over the processor-owned
// payments table. Every request recomputes from a fresh fetch; nothing is
// cached between calls.
type AnalyticsHandler struct {
	paymentRepository repositories.PaymentRepository
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(paymentRepo repositories.PaymentRepository) *AnalyticsHandler {
	return &AnalyticsHandler{paymentRepository: paymentRepo}
}

// RegisterAnalyticsRoutes registers the analytics endpoints
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(e *echo.Echo) {
	e.GET("/api/analytics/payments", h.GetPaymentAnalytics)
	e.POST("/api/analytics/payments", h.GetPaymentStat)
}

// PaymentSummary holds the headline numbers of an analytics report
type PaymentSummary struct {
	TotalAmount        float64 `json:"totalAmount"`
	TotalPayments      int     `json:"totalPayments"`
	SuccessfulPayments int     `json:"successfulPayments"`
	FailedPayments     int     `json:"failedPayments"`
	SuccessRate        float64 `json:"successRate"`
}

// PaymentBucket is a count/total pair for a grouped breakdown
type PaymentBucket struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// GetPaymentAnalytics handles the query-based report:
// GET /api/analytics/payments?userId&startDate&endDate&paymentMethod&status&page&limit
func (h *AnalyticsHandler) GetPaymentAnalytics(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}

	filter := models.PaymentFilter{
		UserID:        c.QueryParam("userId"),
		PaymentMethod: c.QueryParam("paymentMethod"),
		Status:        c.QueryParam("status"),
		Limit:         limit,
	}
	// Both bounds are required for a date filter, mirroring the original
	// report behavior.
	if start, ok := parseDate(c.QueryParam("startDate")); ok {
		if end, ok := parseDate(c.QueryParam("endDate")); ok {
			filter.StartDate = start
			filter.EndDate = end
		}
	}

	payments, err := h.paymentRepository.ListPayments(c.Request().Context(), filter)
	if err != nil {
		log.Printf("Analytics error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"errors":  []string{"Failed to fetch analytics"},
		})
	}

	summary := summarizePayments(payments)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"payments": payments,
			"summary":  summary,
			"breakdown": echo.Map{
				"byMethod": groupByMethod(payments),
				"byDate":   groupByDate(payments),
			},
			"pagination": echo.Map{
				"page":  page,
				"limit": limit,
				"total": summary.TotalPayments,
			},
		},
	})
}

// PaymentStatRequest discriminates the narrow ad hoc queries
type PaymentStatRequest struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
}

// GetPaymentStat handles POST /api/analytics/payments: one narrow computed
// value per request type, recomputed from a fresh fetch each time.
func (h *AnalyticsHandler) GetPaymentStat(c echo.Context) error {
	var req PaymentStatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"errors":  []string{"Invalid request payload"},
		})
	}

	payments, err := h.paymentRepository.ListPayments(c.Request().Context(), models.PaymentFilter{UserID: req.UserID})
	if err != nil {
		log.Printf("Analytics error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"errors":  []string{"Failed to fetch analytics"},
		})
	}

	switch req.Type {
	case "revenue":
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"revenue": totalRevenue(payments),
		})
	case "conversion":
		return c.JSON(http.StatusOK, echo.Map{
			"success":        true,
			"conversionRate": conversionRate(payments),
		})
	case "trends":
		return c.JSON(http.StatusOK, echo.Map{
			"success":      true,
			"dailyRevenue": dailyRevenue(payments, time.Now()),
		})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"errors":  []string{"Invalid analytics type"},
		})
	}
}

// summarizePayments computes the headline report numbers
func summarizePayments(payments []models.Payment) PaymentSummary {
	s := PaymentSummary{TotalPayments: len(payments)}
	for _, p := range payments {
		s.TotalAmount += p.Amount
		switch p.Status {
		case models.PaymentCompleted:
			s.SuccessfulPayments++
		case models.PaymentFailed:
			s.FailedPayments++
		}
	}
	s.TotalAmount = round2(s.TotalAmount)
	if s.TotalPayments > 0 {
		s.SuccessRate = round2(float64(s.SuccessfulPayments) / float64(s.TotalPayments) * 100)
	}
	return s
}

// groupByMethod totals payments per payment method
func groupByMethod(payments []models.Payment) map[string]PaymentBucket {
	byMethod := make(map[string]PaymentBucket)
	for _, p := range payments {
		method := p.PaymentMethod
		if method == "" {
			method = "unknown"
		}
		b := byMethod[method]
		b.Count++
		b.Total = round2(b.Total + p.Amount)
		byMethod[method] = b
	}
	return byMethod
}

// dateBuckets marshals as a JSON object whose keys stay in slice order, so
// the calendar-day breakdown serializes ascending.
type dateBuckets []dateBucket

type dateBucket struct {
	Date   string
	Bucket PaymentBucket
}

func (b dateBuckets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Date)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Bucket)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// groupByDate totals payments per calendar day, ascending
func groupByDate(payments []models.Payment) dateBuckets {
	byDate := make(map[string]PaymentBucket)
	for _, p := range payments {
		day := p.CreatedAt.UTC().Format("2006-01-02")
		b := byDate[day]
		b.Count++
		b.Total = round2(b.Total + p.Amount)
		byDate[day] = b
	}

	days := make([]string, 0, len(byDate))
	for day := range byDate {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make(dateBuckets, len(days))
	for i, day := range days {
		out[i] = dateBucket{Date: day, Bucket: byDate[day]}
	}
	return out
}

// totalRevenue sums completed payment amounts
func totalRevenue(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			total += p.Amount
		}
	}
	return round2(total)
}

// conversionRate is the completed share of all payments, as a percentage
func conversionRate(payments []models.Payment) float64 {
	if len(payments) == 0 {
		return 0
	}
	completed := 0
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			completed++
		}
	}
	return round2(float64(completed) / float64(len(payments)) * 100)
}

// dailyRevenueEntries marshals like dateBuckets: an object with keys in
// slice order.
type dailyRevenueEntries []dailyRevenueEntry

type dailyRevenueEntry struct {
	Date   string
	Amount float64
}

func (e dailyRevenueEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Date)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// dailyRevenue groups completed payments from the last 30 days by calendar
// day, ascending
func dailyRevenue(payments []models.Payment, now time.Time) dailyRevenueEntries {
	cutoff := now.Add(-30 * 24 * time.Hour)

	byDay := make(map[string]float64)
	for _, p := range payments {
		if p.Status != models.PaymentCompleted || !p.CreatedAt.After(cutoff) {
			continue
		}
		day := p.CreatedAt.UTC().Format("2006-01-02")
		byDay[day] = round2(byDay[day] + p.Amount)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make(dailyRevenueEntries, len(days))
	for i, day := range days {
		out[i] = dailyRevenueEntry{Date: day, Amount: byDay[day]}
	}
	return out
}

// parseDate accepts RFC3339 timestamps or bare YYYY-MM-DD dates
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
