package iocache

import (
	"github.com/stretchr/testify/mock"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetResultStore implements the CacheManager interface.
func (m *MockCacheManager) GetResultStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordAnalysis implements the HistoryStore interface.
func (m *MockHistoryStore) RecordAnalysis(analysis *schema.MarketAnalysis) (int64, error) {
	args := m.Called(analysis)
	return args.Get(0).(int64), args.Error(1)
}

// RecordContribution implements the HistoryStore interface.
func (m *MockHistoryStore) RecordContribution(analysisID int64, c schema.ComparableContribution) error {
	args := m.Called(analysisID, c)
	return args.Error(0)
}

// ListAnalyses implements the HistoryStore interface.
func (m *MockHistoryStore) ListAnalyses(appraisalID string, limit int) ([]schema.AnalysisRecord, error) {
	args := m.Called(appraisalID, limit)
	records, _ := args.Get(0).([]schema.AnalysisRecord)
	return records, args.Error(1)
}

// GetAllAnalyses implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllAnalyses() ([]schema.AnalysisRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.AnalysisRecord)
	return records, args.Error(1)
}

// GetAllContributions implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllContributions() ([]schema.ContributionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ContributionRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
