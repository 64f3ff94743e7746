package core

import "github.com/valuewise/marketval/internal/contract"

// EngineFromConfig builds an engine from validated runtime configuration,
// overlaying any tunables the user set on top of the engine defaults.
func EngineFromConfig(cfg *contract.Config) *Engine {
	params := DefaultParams()
	if cfg.DepreciationRate > 0 {
		params.DepreciationRate = cfg.DepreciationRate
	}
	if cfg.DistanceFreeMiles > 0 {
		params.DistanceFreeMiles = cfg.DistanceFreeMiles
	}
	if cfg.MaterialityPct > 0 {
		params.MaterialityPct = cfg.MaterialityPct
	}

	catalog := NewEquipmentCatalog()
	catalog.Import(cfg.EquipmentValues)
	return NewEngine(params, catalog)
}
