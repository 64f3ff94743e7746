package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
)

// currentCacheVersion defines the version of the cached analysis layout.
const currentCacheVersion = 1

// cacheTTL bounds how long a cached analysis stays usable. Caching is a
// performance optimization only; recalculation is cheap and deterministic.
const cacheTTL = 5 * time.Minute

// CachedCalculateMarketValue computes a market analysis, consulting the
// result cache first. The cache key covers the appraisal ID, the loss
// vehicle, the full comparable set, the insurance value, the engine
// parameters and the equipment catalog overrides, so any input change
// invalidates the entry. A nil or missing store falls through to direct
// computation.
func (e *Engine) CachedCalculateMarketValue(mgr contract.CacheManager, appraisalID string, loss *schema.LossVehicle, comparables []schema.ComparableVehicle, insuranceValue float64) (*schema.MarketAnalysis, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResultStore()
	}
	if store == nil {
		return e.CalculateMarketValue(appraisalID, loss, comparables, insuranceValue)
	}

	key, err := e.cacheKey(appraisalID, loss, comparables, insuranceValue)
	if err != nil {
		// An unhashable input is not fatal; just skip the cache.
		return e.CalculateMarketValue(appraisalID, loss, comparables, insuranceValue)
	}

	if cached := checkCacheHit(store, key); cached != nil {
		return cached, nil
	}

	analysis, err := e.CalculateMarketValue(appraisalID, loss, comparables, insuranceValue)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(analysis); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	return analysis, nil
}

// checkCacheHit retrieves and validates a cached analysis, returning nil on
// any miss, staleness or version mismatch.
func checkCacheHit(store contract.CacheStore, key string) *schema.MarketAnalysis {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil
	}

	if version != currentCacheVersion {
		return nil
	}
	if time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}

	var analysis schema.MarketAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil
	}
	return &analysis
}

// cacheKey hashes every input that affects the analysis. Catalog overrides
// are part of the payload because they flow into the equipment adjustments;
// json.Marshal emits map keys sorted, so the hash stays deterministic.
func (e *Engine) cacheKey(appraisalID string, loss *schema.LossVehicle, comparables []schema.ComparableVehicle, insuranceValue float64) (string, error) {
	payload := struct {
		AppraisalID        string                     `json:"appraisalId"`
		Loss               *schema.LossVehicle        `json:"loss"`
		Comparables        []schema.ComparableVehicle `json:"comparables"`
		InsuranceValue     float64                    `json:"insuranceValue"`
		Params             Params                     `json:"params"`
		EquipmentOverrides map[string]float64         `json:"equipmentOverrides"`
	}{appraisalID, loss, comparables, insuranceValue, e.params, e.catalog.Export()}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
