package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/application/services/orchestration"
	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Store a small warehouse layout: three zones of four aisles, dock at the origin
	profiles := memory.NewProfileRepository()
	if err := profiles.SaveProfile(ctx, buildLayout("DC-EAST")); err != nil {
		fmt.Printf("❌ Failed to store profile: %v\n", err)
		return
	}

	profile, err := profiles.GetProfile(ctx, "DC-EAST")
	if err != nil {
		fmt.Printf("❌ Failed to load profile: %v\n", err)
		return
	}

	rows := buildOrderHistory()
	fmt.Println("📦 Running slotting analysis for DC-EAST...")
	fmt.Printf("Order lines: %d\n\n", len(rows))

	config := dto.DefaultAnalysisConfig()
	config.MaxRecommendations = 10

	analyzer, err := orchestration.NewAnalyzer(config)
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return
	}

	result, err := analyzer.Analyze(ctx, rows, profile)
	if err != nil {
		fmt.Printf("❌ Analysis failed: %v\n", err)
		return
	}

	s := result.Summary
	fmt.Println("📊 Results:")
	fmt.Printf("  Distance model: %s\n", result.DistanceMode)
	fmt.Printf("  SKUs: %d (A=%d B=%d C=%d D=%d)\n", s.SKUsAnalyzed,
		s.ClassCounts[entities.ClassA], s.ClassCounts[entities.ClassB],
		s.ClassCounts[entities.ClassC], s.ClassCounts[entities.ClassD])
	fmt.Printf("  Misplaced SKUs: %d\n", len(result.Misplacements))
	fmt.Printf("  Affinity pairs: %d\n", len(result.AffinityPairs))
	fmt.Println()

	if len(result.Recommendations) > 0 {
		fmt.Println("🔀 Top relocations:")
		for i, rec := range result.Recommendations {
			fmt.Printf("  %d. %s: %s -> %s (%s priority, saves %.1f m per pick)\n",
				i+1, rec.SKU, rec.CurrentLocation, rec.RecommendedLocation,
				rec.Priority, rec.DistanceSavedPerPickM)
			if rec.AffinityNote != "" {
				fmt.Printf("     %s\n", rec.AffinityNote)
			}
		}
		fmt.Println()
	}

	fmt.Println("💰 Projected savings:")
	fmt.Printf("  %.0f m and %.1f labor hours per month\n", s.MonthlyDistanceSavedM, s.MonthlyHoursSaved)
	fmt.Printf("  %s per month, %s per year\n", s.MonthlyCostSavings.StringFixed(2), s.AnnualCostSavings.StringFixed(2))
}

func buildLayout(id string) *entities.WarehouseProfile {
	coords := make(map[string]entities.Point)
	for zi, zone := range []string{"A", "B", "C"} {
		for aisle := 1; aisle <= 4; aisle++ {
			for slot := 1; slot <= 6; slot++ {
				loc := fmt.Sprintf("%s-%02d-%02d", zone, aisle, slot)
				coords[loc] = entities.Point{X: float64(aisle) * 5, Y: float64(zi)*25 + float64(slot)*2}
			}
		}
	}
	return &entities.WarehouseProfile{
		WarehouseID: id,
		Zones:       []string{"A", "B", "C"},
		Dock:        &entities.Point{X: 0, Y: 0},
		Coordinates: coords,
	}
}

// buildOrderHistory generates 90 days of orders where a few fast movers sit
// in the back of the building and two SKUs are usually picked together
func buildOrderHistory() []entities.RawRow {
	rng := rand.New(rand.NewSource(7))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	skus := make([]string, 30)
	locations := make(map[string]string, len(skus))
	for i := range skus {
		skus[i] = fmt.Sprintf("SKU-%03d", i+1)
		zone := []string{"C", "B", "A"}[i%3]
		locations[skus[i]] = fmt.Sprintf("%s-%02d-%02d", zone, i%4+1, i/4%6+1)
	}

	var rows []entities.RawRow
	for o := 0; o < 400; o++ {
		id := fmt.Sprintf("SO-%05d", o)
		date := start.AddDate(0, 0, o%90).Format("2006-01-02")
		lines := 1 + rng.Intn(3)
		for l := 0; l < lines; l++ {
			r := rng.Float64()
			sku := skus[int(r*r*r*float64(len(skus)))]
			rows = append(rows, row(id, date, sku, 1+rng.Intn(4), locations[sku]))
			if sku == "SKU-001" && rng.Float64() < 0.7 {
				rows = append(rows, row(id, date, "SKU-020", 1, locations["SKU-020"]))
			}
		}
	}
	return rows
}

func row(orderID, date, sku string, qty int, location string) entities.RawRow {
	return entities.RawRow{
		"order_id":         orderID,
		"order_date":       date,
		"sku_code":         sku,
		"sku_name":         "Item " + sku,
		"category":         "General",
		"quantity":         qty,
		"current_location": location,
		"weight_kg":        1.0,
	}
}
