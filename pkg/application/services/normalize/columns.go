package normalize

import (
	"sort"
	"strings"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Canonical field names of an order line
const (
	FieldOrderID   = "order_id"
	FieldOrderDate = "order_date"
	FieldSKUCode   = "sku_code"
	FieldSKUName   = "sku_name"
	FieldCategory  = "category"
	FieldQuantity  = "quantity"
	FieldLocation  = "current_location"
	FieldWeightKg  = "weight_kg"
)

// RequiredFields lists the eight canonical fields in output order
var RequiredFields = []string{
	FieldOrderID,
	FieldOrderDate,
	FieldSKUCode,
	FieldSKUName,
	FieldCategory,
	FieldQuantity,
	FieldLocation,
	FieldWeightKg,
}

// aliases maps each canonical field to the header spellings accepted for it, in preference order
var aliases = map[string][]string{
	FieldOrderID:   {"order_id", "orderid", "order", "order_no", "order_number"},
	FieldOrderDate: {"order_date", "orderdate", "date", "pick_date", "ship_date"},
	FieldSKUCode:   {"sku_code", "sku", "skucode", "sku_id", "item_code", "product_code"},
	FieldSKUName:   {"sku_name", "item_name", "product_name", "name", "description"},
	FieldCategory:  {"category", "product_category", "item_category", "family"},
	FieldQuantity:  {"quantity", "qty", "units", "pick_qty", "picked_qty"},
	FieldLocation:  {"current_location", "location", "location_code", "bin", "slot"},
	FieldWeightKg:  {"weight_kg", "weight", "unit_weight_kg", "unit_weight"},
}

// ColumnMap maps canonical field names to the source header keys holding them
type ColumnMap map[string]string

// headerKey folds a source header to the form aliases are written in
func headerKey(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.NewReplacer(" ", "_", "-", "_", ".", "_").Replace(key)
	return key
}

// ResolveColumns maps the canonical fields onto the headers present across rows.
// It returns the mapping and the canonical fields that could not be resolved, sorted.
func ResolveColumns(rows []entities.RawRow) (ColumnMap, []string) {
	// folded header -> original headers spelled that way
	byKey := make(map[string][]string)
	seen := make(map[string]bool)
	for _, row := range rows {
		for header := range row {
			if seen[header] {
				continue
			}
			seen[header] = true
			key := headerKey(header)
			byKey[key] = append(byKey[key], header)
		}
	}

	columns := make(ColumnMap, len(RequiredFields))
	var missing []string
	for _, field := range RequiredFields {
		resolved := false
		for _, alias := range aliases[field] {
			originals, ok := byKey[alias]
			if !ok {
				continue
			}
			sort.Strings(originals)
			columns[field] = originals[0]
			resolved = true
			break
		}
		if !resolved {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return columns, missing
}
