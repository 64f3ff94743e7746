package core

import (
	"strings"
)

// EquipmentCategory groups features for catalog display.
type EquipmentCategory string

// All equipment categories.
const (
	CategoryComfort     EquipmentCategory = "comfort"
	CategoryTechnology  EquipmentCategory = "technology"
	CategorySafety      EquipmentCategory = "safety"
	CategoryPerformance EquipmentCategory = "performance"
	CategoryAppearance  EquipmentCategory = "appearance"
)

// CatalogEntry is one feature in the standard equipment valuation table.
type CatalogEntry struct {
	Name     string            `json:"name"`
	Value    float64           `json:"value"`
	Category EquipmentCategory `json:"category"`
}

// standardCatalog maps normalized feature names to standard dollar values.
// Values reflect typical retail option pricing on mainstream used vehicles.
var standardCatalog = map[string]CatalogEntry{
	"leather seats":        {Name: "Leather Seats", Value: 1200, Category: CategoryComfort},
	"heated seats":         {Name: "Heated Seats", Value: 500, Category: CategoryComfort},
	"ventilated seats":     {Name: "Ventilated Seats", Value: 650, Category: CategoryComfort},
	"sunroof":              {Name: "Sunroof", Value: 900, Category: CategoryComfort},
	"moonroof":             {Name: "Moonroof", Value: 900, Category: CategoryComfort},
	"panoramic roof":       {Name: "Panoramic Roof", Value: 1400, Category: CategoryComfort},
	"dual zone climate":    {Name: "Dual Zone Climate", Value: 400, Category: CategoryComfort},
	"power liftgate":       {Name: "Power Liftgate", Value: 550, Category: CategoryComfort},
	"remote start":         {Name: "Remote Start", Value: 350, Category: CategoryComfort},
	"keyless entry":        {Name: "Keyless Entry", Value: 250, Category: CategoryComfort},
	"navigation":           {Name: "Navigation", Value: 800, Category: CategoryTechnology},
	"premium audio":        {Name: "Premium Audio", Value: 700, Category: CategoryTechnology},
	"apple carplay":        {Name: "Apple CarPlay", Value: 300, Category: CategoryTechnology},
	"android auto":         {Name: "Android Auto", Value: 300, Category: CategoryTechnology},
	"heads up display":     {Name: "Heads Up Display", Value: 600, Category: CategoryTechnology},
	"wireless charging":    {Name: "Wireless Charging", Value: 200, Category: CategoryTechnology},
	"backup camera":        {Name: "Backup Camera", Value: 400, Category: CategorySafety},
	"blind spot monitor":   {Name: "Blind Spot Monitor", Value: 500, Category: CategorySafety},
	"lane keep assist":     {Name: "Lane Keep Assist", Value: 450, Category: CategorySafety},
	"adaptive cruise":      {Name: "Adaptive Cruise", Value: 800, Category: CategorySafety},
	"parking sensors":      {Name: "Parking Sensors", Value: 350, Category: CategorySafety},
	"collision warning":    {Name: "Collision Warning", Value: 500, Category: CategorySafety},
	"all wheel drive":      {Name: "All Wheel Drive", Value: 1800, Category: CategoryPerformance},
	"four wheel drive":     {Name: "Four Wheel Drive", Value: 1800, Category: CategoryPerformance},
	"tow package":          {Name: "Tow Package", Value: 1000, Category: CategoryPerformance},
	"sport package":        {Name: "Sport Package", Value: 1500, Category: CategoryPerformance},
	"turbo":                {Name: "Turbo", Value: 1200, Category: CategoryPerformance},
	"alloy wheels":         {Name: "Alloy Wheels", Value: 600, Category: CategoryAppearance},
	"premium paint":        {Name: "Premium Paint", Value: 400, Category: CategoryAppearance},
	"roof rack":            {Name: "Roof Rack", Value: 250, Category: CategoryAppearance},
	"running boards":       {Name: "Running Boards", Value: 450, Category: CategoryAppearance},
	"tinted windows":       {Name: "Tinted Windows", Value: 200, Category: CategoryAppearance},
}

// EquipmentCatalog resolves feature names to dollar values. Lookups are
// case-insensitive and whitespace-trimmed against the standard catalog, with
// per-session overrides layered on top. Overrides are owned by the caller;
// the catalog carries no persistence and no internal locking, so concurrent
// writes must be serialized by the host.
type EquipmentCatalog struct {
	overrides map[string]float64
}

// NewEquipmentCatalog creates a catalog with no overrides.
func NewEquipmentCatalog() *EquipmentCatalog {
	return &EquipmentCatalog{overrides: make(map[string]float64)}
}

// normalizeFeature is the canonical key form for lookups and overrides.
func normalizeFeature(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetValue returns the dollar value for a feature. Overrides win over the
// standard catalog; unknown features resolve to 0.
func (c *EquipmentCatalog) GetValue(name string) float64 {
	key := normalizeFeature(name)
	if v, ok := c.overrides[key]; ok {
		return v
	}
	if entry, ok := standardCatalog[key]; ok {
		return entry.Value
	}
	return 0
}

// SetCustomValue sets a session override for a feature. Negative values are
// rejected with ErrInvalidEquipmentValue.
func (c *EquipmentCatalog) SetCustomValue(name string, value float64) error {
	if value < 0 {
		return ErrInvalidEquipmentValue
	}
	key := normalizeFeature(name)
	if key == "" {
		return ErrInvalidEquipmentValue
	}
	c.overrides[key] = value
	return nil
}

// ClearCustomValue removes a single override.
func (c *EquipmentCatalog) ClearCustomValue(name string) {
	delete(c.overrides, normalizeFeature(name))
}

// ClearCustomValues removes all overrides.
func (c *EquipmentCatalog) ClearCustomValues() {
	c.overrides = make(map[string]float64)
}

// Export returns a copy of the current overrides as a name to value map.
func (c *EquipmentCatalog) Export() map[string]float64 {
	out := make(map[string]float64, len(c.overrides))
	for k, v := range c.overrides {
		out[k] = v
	}
	return out
}

// Import applies overrides from a name to value map. Malformed entries
// (negative values or blank names) are skipped, not fatal. Returns the number
// of overrides applied.
func (c *EquipmentCatalog) Import(values map[string]float64) int {
	applied := 0
	for name, value := range values {
		if c.SetCustomValue(name, value) == nil {
			applied++
		}
	}
	return applied
}

// CalculateTotalValue sums the values of all listed features, counting
// duplicates each time they appear.
func (c *EquipmentCatalog) CalculateTotalValue(features []string) float64 {
	var total float64
	for _, f := range features {
		total += c.GetValue(f)
	}
	return total
}

// StandardEntries returns the standard catalog entries for display, without
// overrides applied.
func StandardEntries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(standardCatalog))
	for _, entry := range standardCatalog {
		out = append(out, entry)
	}
	return out
}
