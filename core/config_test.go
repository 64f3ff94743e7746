package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valuewise/marketval/internal/contract"
)

// TestEngineFromConfigDefaults checks that zero tunables keep the defaults.
func TestEngineFromConfigDefaults(t *testing.T) {
	e := EngineFromConfig(&contract.Config{})
	params := e.Params()

	defaults := DefaultParams()
	assert.InDelta(t, defaults.DepreciationRate, params.DepreciationRate, 0.001)
	assert.InDelta(t, defaults.DistanceFreeMiles, params.DistanceFreeMiles, 0.001)
	assert.InDelta(t, defaults.MaterialityPct, params.MaterialityPct, 0.001)
}

// TestEngineFromConfigOverrides checks that set tunables replace defaults and
// custom equipment values reach the catalog.
func TestEngineFromConfigOverrides(t *testing.T) {
	cfg := &contract.Config{
		DepreciationRate:  0.35,
		DistanceFreeMiles: 50,
		MaterialityPct:    10,
		EquipmentValues: map[string]float64{
			"Leather Seats": 700,
			"Lift Kit":      1500,
		},
	}

	e := EngineFromConfig(cfg)
	params := e.Params()
	assert.InDelta(t, 0.35, params.DepreciationRate, 0.001)
	assert.InDelta(t, 50, params.DistanceFreeMiles, 0.001)
	assert.InDelta(t, 10, params.MaterialityPct, 0.001)

	assert.InDelta(t, 700, e.Catalog().GetValue("leather seats"), 0.001)
	assert.InDelta(t, 1500, e.Catalog().GetValue("Lift Kit"), 0.001)
	assert.InDelta(t, 900, e.Catalog().GetValue("Sunroof"), 0.001, "Untouched features keep standard values")
}
