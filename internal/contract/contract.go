// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/valuewise/marketval/schema"
)

// CacheManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cached analysis storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking completed analyses.
type HistoryStore interface {
	// RecordAnalysis persists a completed market analysis and returns its
	// unique row ID.
	RecordAnalysis(analysis *schema.MarketAnalysis) (int64, error)

	// RecordContribution stores one comparable's share of an analysis.
	RecordContribution(analysisID int64, contribution schema.ComparableContribution) error

	// ListAnalyses returns the most recent analysis records for an
	// appraisal, newest first. An empty appraisalID lists across all.
	ListAnalyses(appraisalID string, limit int) ([]schema.AnalysisRecord, error)

	// GetAllAnalyses returns every stored analysis record, oldest first.
	// Used for bulk export.
	GetAllAnalyses() ([]schema.AnalysisRecord, error)

	// GetAllContributions returns every stored contribution record, ordered
	// by analysis. Used for bulk export.
	GetAllContributions() ([]schema.ContributionRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
