package schema

import "time"

// CacheStatus represents the status of the result cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the appraisal history store.
type HistoryStatus struct {
	Backend           string           `json:"backend"`
	Connected         bool             `json:"connected"`
	TotalAnalyses     int              `json:"total_analyses"`
	LastAnalysisID    int64            `json:"last_analysis_id"`
	LastAnalysisTime  time.Time        `json:"last_analysis_time"`
	OldestAnalysis    time.Time        `json:"oldest_analysis"`
	TotalComparables  int              `json:"total_comparables"`
	TableSizes        map[string]int64 `json:"table_sizes"`
}

// AnalysisRecord represents a row from the marketval_analyses table.
type AnalysisRecord struct {
	AnalysisID            int64     `json:"analysis_id"`
	AppraisalID           string    `json:"appraisal_id"`
	CalculatedAt          time.Time `json:"calculated_at"`
	CalculatedMarketValue float64   `json:"market_value"`
	InsuranceValue        float64   `json:"insurance_value"`
	ValueDifference       float64   `json:"value_difference"`
	ConfidenceLevel       float64   `json:"confidence_level"`
	ComparableCount       int       `json:"comparable_count"`
	IsUndervalued         bool      `json:"is_undervalued"`
}

// ContributionRecord represents a row from the marketval_contributions table.
type ContributionRecord struct {
	AnalysisID    int64   `json:"analysis_id"`
	ComparableID  string  `json:"comparable_id"`
	ListPrice     float64 `json:"list_price"`
	AdjustedPrice float64 `json:"adjusted_price"`
	QualityScore  float64 `json:"quality_score"`
	WeightedValue float64 `json:"weighted_value"`
}
