package entities

import (
	"fmt"
	"math"
	"time"
)

// SKUCode represents a normalized (upper-cased, trimmed) stock keeping unit identifier
type SKUCode string

// Quantity represents an integer pick quantity
type Quantity int64

// MaxQuantity is the largest quantity a single order line may carry
const MaxQuantity Quantity = math.MaxInt32

const secondsPerDay = 24 * 60 * 60

// RawRow represents one loosely typed row as parsed from a CSV or XLSX upload.
// Keys are the source column headers.
type RawRow map[string]any

// OrderLine represents one normalized historical order line
type OrderLine struct {
	OrderID   string    `json:"order_id"`
	OrderDate time.Time `json:"order_date"`
	SKU       SKUCode   `json:"sku_code"`
	SKUName   string    `json:"sku_name"`
	Category  string    `json:"category"`
	Quantity  Quantity  `json:"quantity"`
	Location  string    `json:"current_location"`
	WeightKg  float64   `json:"weight_kg"`
}

// NewOrderLine creates a validated OrderLine
func NewOrderLine(orderID string, orderDate time.Time, sku SKUCode, name, category string, quantity Quantity, location string, weightKg float64) (*OrderLine, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if sku == "" {
		return nil, fmt.Errorf("sku code cannot be empty")
	}
	if orderDate.IsZero() {
		return nil, fmt.Errorf("order date cannot be zero")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}
	if quantity > MaxQuantity {
		return nil, fmt.Errorf("quantity cannot exceed %d, got %d", MaxQuantity, quantity)
	}
	if weightKg < 0 {
		return nil, fmt.Errorf("weight cannot be negative, got %g", weightKg)
	}

	return &OrderLine{
		OrderID:   orderID,
		OrderDate: orderDate,
		SKU:       sku,
		SKUName:   name,
		Category:  category,
		Quantity:  quantity,
		Location:  location,
		WeightKg:  weightKg,
	}, nil
}

// PeriodDays returns the inclusive number of calendar days spanned by the
// order dates of lines, never less than 1. Spans are counted in Unix seconds
// because time.Duration saturates after about 292 years.
func PeriodDays(lines []OrderLine) int {
	if len(lines) == 0 {
		return 1
	}
	minDate, maxDate := lines[0].OrderDate, lines[0].OrderDate
	for _, line := range lines[1:] {
		if line.OrderDate.Before(minDate) {
			minDate = line.OrderDate
		}
		if line.OrderDate.After(maxDate) {
			maxDate = line.OrderDate
		}
	}
	days := int((truncateDay(maxDate).Unix()-truncateDay(minDate).Unix())/secondsPerDay) + 1
	if days < 1 {
		return 1
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
