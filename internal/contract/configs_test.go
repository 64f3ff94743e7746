package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valuewise/marketval/schema"
)

// TestProcessAndValidateDefaults checks that empty input resolves to the
// documented defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{}

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, 0, cfg.Precision)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
}

// TestProcessAndValidateRejections covers each validation failure.
func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		input   ConfigRawInput
		message string
	}{
		{
			name:    "bad output mode",
			input:   ConfigRawInput{OutputStr: "yaml"},
			message: "invalid output mode",
		},
		{
			name:    "precision too high",
			input:   ConfigRawInput{Precision: 9},
			message: "precision must be between",
		},
		{
			name:    "negative precision",
			input:   ConfigRawInput{Precision: -1},
			message: "precision must be between",
		},
		{
			name:    "unknown cache backend",
			input:   ConfigRawInput{CacheBackendStr: "redis"},
			message: "cache backend",
		},
		{
			name:    "unknown history backend",
			input:   ConfigRawInput{HistoryBackendStr: "mongodb"},
			message: "history backend",
		},
		{
			name:    "history limit too large",
			input:   ConfigRawInput{HistoryLimit: MaxHistoryLimit + 1},
			message: "history limit must be between",
		},
		{
			name:    "negative depreciation rate",
			input:   ConfigRawInput{DepreciationRate: -0.1},
			message: "depreciation rate cannot be negative",
		},
		{
			name:    "negative distance free miles",
			input:   ConfigRawInput{DistanceFreeMiles: -5},
			message: "distance free miles cannot be negative",
		},
		{
			name:    "negative materiality",
			input:   ConfigRawInput{MaterialityPct: -1},
			message: "materiality percentage cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ProcessAndValidate(&Config{}, &tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

// TestProcessAndValidateNormalization covers case and whitespace tolerance.
func TestProcessAndValidateNormalization(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		OutputStr:         "  JSON ",
		CacheBackendStr:   "PostgreSQL",
		HistoryBackendStr: "mysql",
		ColorStr:          "no",
		Precision:         3,
		HistoryLimit:      100,
		DepreciationRate:  0.5,
		EquipmentValues:   map[string]float64{"Lift Kit": 1500},
	}

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.PostgreSQLBackend, cfg.CacheBackend)
	assert.Equal(t, schema.MySQLBackend, cfg.HistoryBackend)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.InDelta(t, 0.5, cfg.DepreciationRate, 0.001)
	assert.InDelta(t, 1500, cfg.EquipmentValues["Lift Kit"], 0.001)
}

// TestConfigClone checks that clones do not share the equipment map.
func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Precision:       2,
		EquipmentValues: map[string]float64{"Sunroof": 800},
	}

	clone := cfg.Clone()
	clone.EquipmentValues["Sunroof"] = 100
	clone.Precision = 4

	assert.InDelta(t, 800, cfg.EquipmentValues["Sunroof"], 0.001, "Clone writes must not leak back")
	assert.Equal(t, 2, cfg.Precision)

	var empty Config
	assert.Nil(t, empty.Clone().EquipmentValues, "A nil map stays nil")
}

// TestValidateDatabaseConnectionString covers per-backend requirements.
func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{name: "sqlite needs nothing", backend: schema.SQLiteBackend},
		{name: "none needs nothing", backend: schema.NoneBackend},
		{name: "mysql missing", backend: schema.MySQLBackend, wantErr: true},
		{name: "mysql malformed", backend: schema.MySQLBackend, connStr: "user:pass@host/db", wantErr: true},
		{name: "mysql ok", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/marketval"},
		{name: "postgres missing", backend: schema.PostgreSQLBackend, wantErr: true},
		{name: "postgres malformed", backend: schema.PostgreSQLBackend, connStr: "localhost:5432", wantErr: true},
		{name: "postgres ok", backend: schema.PostgreSQLBackend, connStr: "host=localhost port=5432 dbname=marketval"},
		{name: "unknown backend", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
