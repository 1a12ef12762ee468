package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// BaseDate is the first order date of every generated scenario
var BaseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Row builds a raw upload row using the canonical headers
func Row(orderID string, date time.Time, sku string, qty int, location string) entities.RawRow {
	return entities.RawRow{
		"order_id":         orderID,
		"order_date":       date.Format("2006-01-02"),
		"sku_code":         sku,
		"sku_name":         "Item " + sku,
		"category":         "General",
		"quantity":         fmt.Sprint(qty),
		"current_location": location,
		"weight_kg":        "1.5",
	}
}

// Line builds a normalized order line
func Line(orderID string, day int, sku string, qty int, location string) entities.OrderLine {
	return entities.OrderLine{
		OrderID:   orderID,
		OrderDate: BaseDate.AddDate(0, 0, day),
		SKU:       entities.SKUCode(sku),
		SKUName:   "Item " + sku,
		Category:  "General",
		Quantity:  entities.Quantity(qty),
		Location:  location,
		WeightKg:  1.5,
	}
}

// BuildDominantSKURows builds 150 single-line orders over 30 days for 10 SKUs,
// all stored in zone C. DOM-01 carries 85% of the picked quantity
// (510 of 600); MIN-01..MIN-09 carry 10 each.
//
// Expected classes: DOM-01 A, MIN-01..06 B, MIN-07..08 C, MIN-09 D.
func BuildDominantSKURows() []entities.RawRow {
	rows := make([]entities.RawRow, 0, 150)
	add := func(sku string, qty int, location string) {
		i := len(rows)
		rows = append(rows, Row(fmt.Sprintf("SO-%04d", i), BaseDate.AddDate(0, 0, i%30), sku, qty, location))
	}

	for i := 0; i < 105; i++ {
		qty := 5
		if i >= 90 {
			qty = 4
		}
		add("DOM-01", qty, "C-01-01")
	}
	for k := 1; k <= 9; k++ {
		for i := 0; i < 5; i++ {
			add(fmt.Sprintf("MIN-%02d", k), 2, fmt.Sprintf("C-%02d-01", k+1))
		}
	}
	return rows
}

// BuildAffinityLines builds 100 orders where SKU-I appears in 5, SKU-J in 4,
// and both together in 3. Every order also carries BASE.
func BuildAffinityLines() []entities.OrderLine {
	var lines []entities.OrderLine
	for o := 0; o < 100; o++ {
		id := fmt.Sprintf("O-%03d", o)
		lines = append(lines, Line(id, o%28, "BASE", 1, "B-01-01"))
		if o < 5 {
			lines = append(lines, Line(id, o%28, "SKU-I", 2, "A-01-01"))
		}
		if o < 3 || o == 5 {
			lines = append(lines, Line(id, o%28, "SKU-J", 1, "C-05-01"))
		}
	}
	return lines
}

// BuildWarehouseRows builds a reproducible mixed dataset: 240 orders of one to
// four lines over 60 days, 40 SKUs with skewed popularity spread over zones A-C,
// and a few SKU pairs that are usually ordered together.
func BuildWarehouseRows() []entities.RawRow {
	rng := rand.New(rand.NewSource(42))

	skus := make([]string, 40)
	locations := make(map[string]string, 40)
	zones := []string{"A", "B", "C"}
	for i := range skus {
		skus[i] = fmt.Sprintf("SKU-%03d", i+1)
		// popular SKUs are deliberately scattered across zones
		zone := zones[(i*7)%3]
		locations[skus[i]] = fmt.Sprintf("%s-%02d-%02d", zone, i/5+1, i%5+1)
	}
	companions := map[string]string{
		"SKU-002": "SKU-031",
		"SKU-005": "SKU-017",
		"SKU-010": "SKU-036",
	}

	var rows []entities.RawRow
	for o := 0; o < 240; o++ {
		id := fmt.Sprintf("WO-%05d", o)
		date := BaseDate.AddDate(0, 0, o%60)
		picked := map[string]bool{}
		n := 1 + rng.Intn(4)
		for l := 0; l < n; l++ {
			// squaring skews draws toward low indices
			r := rng.Float64()
			sku := skus[int(r*r*float64(len(skus)))]
			if picked[sku] {
				continue
			}
			picked[sku] = true
			rows = append(rows, Row(id, date, sku, 1+rng.Intn(6), locations[sku]))
			if partner, ok := companions[sku]; ok && rng.Float64() < 0.8 && !picked[partner] {
				picked[partner] = true
				rows = append(rows, Row(id, date, partner, 1+rng.Intn(3), locations[partner]))
			}
		}
	}
	return rows
}

// BuildLayoutProfile builds a small warehouse with real coordinates for zones A-C.
// Zone A sits next to the dock at the origin, zone C at the far wall.
func BuildLayoutProfile() *entities.WarehouseProfile {
	coords := make(map[string]entities.Point)
	for zi, zone := range []string{"A", "B", "C"} {
		for aisle := 1; aisle <= 3; aisle++ {
			for slot := 1; slot <= 4; slot++ {
				loc := fmt.Sprintf("%s-%02d-%02d", zone, aisle, slot)
				coords[loc] = entities.Point{
					X: float64(aisle) * 4,
					Y: float64(zi)*30 + float64(slot)*2,
				}
			}
		}
	}
	return &entities.WarehouseProfile{
		WarehouseID: "WH-LAYOUT",
		Zones:       []string{"A", "B", "C"},
		Dock:        &entities.Point{X: 0, Y: 0},
		Coordinates: coords,
	}
}
