package contract

import (
	"fmt"
	"strings"

	"github.com/valuewise/marketval/schema"
)

// Default values for configuration.
const (
	DefaultHistoryLimit = 25
	MaxHistoryLimit     = 1000
	DefaultPrecision    = 2
)

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct; ProcessAndValidate
// turns it into a Config.
type ConfigRawInput struct {
	CaseFileStr string `mapstructure:"case-file"`
	OutputStr   string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Precision   int    `mapstructure:"precision"`
	ColorStr    string `mapstructure:"color"`
	Width       int    `mapstructure:"width"`

	CacheBackendStr   string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	HistoryBackendStr string `mapstructure:"history-backend"`
	HistoryDBConnect  string `mapstructure:"history-db-connect"`
	HistoryLimit      int    `mapstructure:"history-limit"`

	// Engine tunables. Zero values mean "use the engine default".
	DepreciationRate  float64 `mapstructure:"depreciation-rate"`
	DistanceFreeMiles float64 `mapstructure:"distance-free-miles"`
	MaterialityPct    float64 `mapstructure:"materiality-pct"`

	// EquipmentValues holds custom equipment overrides from the config
	// file, feature name to dollar value.
	EquipmentValues map[string]float64 `mapstructure:"equipment-values"`
}

// Config holds the validated, final runtime configuration.
type Config struct {
	CaseFile   string
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string // Please use env var as this is plaintext
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	HistoryLimit     int

	// Engine tunables, 0 meaning "use the engine default". The cmd layer
	// folds these into core.Params; contract stays free of a core import.
	DepreciationRate  float64
	DistanceFreeMiles float64
	MaterialityPct    float64
	EquipmentValues   map[string]float64
}

// Clone returns a deep copy of the config, so per-request overrides never
// leak back into the base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.EquipmentValues != nil {
		clone.EquipmentValues = make(map[string]float64, len(c.EquipmentValues))
		for k, v := range c.EquipmentValues {
			clone.EquipmentValues[k] = v
		}
	}
	return &clone
}

// ProcessAndValidate turns raw input into a validated Config. It merges
// engine defaults with any tunables the user set and rejects values the
// engine cannot work with.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.CaseFile = input.CaseFileStr

	output := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.OutputStr)))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv, json or parquet", input.OutputStr)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4, got %d", input.Precision)
	}
	cfg.Precision = input.Precision
	cfg.UseColors = parseBoolish(input.ColorStr, true)
	cfg.Width = input.Width

	backend, err := parseBackend(input.CacheBackendStr, schema.SQLiteBackend)
	if err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect

	historyBackend, err := parseBackend(input.HistoryBackendStr, schema.NoneBackend)
	if err != nil {
		return fmt.Errorf("history backend: %w", err)
	}
	cfg.HistoryBackend = historyBackend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	if input.HistoryLimit < 0 || input.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("history limit must be between 0 and %d, got %d", MaxHistoryLimit, input.HistoryLimit)
	}
	cfg.HistoryLimit = input.HistoryLimit
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}

	if input.DepreciationRate < 0 {
		return fmt.Errorf("depreciation rate cannot be negative, got %f", input.DepreciationRate)
	}
	if input.DistanceFreeMiles < 0 {
		return fmt.Errorf("distance free miles cannot be negative, got %f", input.DistanceFreeMiles)
	}
	if input.MaterialityPct < 0 {
		return fmt.Errorf("materiality percentage cannot be negative, got %f", input.MaterialityPct)
	}
	cfg.DepreciationRate = input.DepreciationRate
	cfg.DistanceFreeMiles = input.DistanceFreeMiles
	cfg.MaterialityPct = input.MaterialityPct
	cfg.EquipmentValues = input.EquipmentValues

	return nil
}

// ValidateDatabaseConnectionString performs basic sanity checks on a
// connection string for the given backend. SQLite and none need no
// connection string, so they always pass.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using the %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using the %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
	default:
		return fmt.Errorf("invalid backend %q: must be sqlite, mysql, postgresql or none", backend)
	}
	return nil
}

// parseBackend resolves a backend name, applying a default for empty input.
func parseBackend(raw string, fallback schema.DatabaseBackend) (schema.DatabaseBackend, error) {
	name := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if name == "" {
		return fallback, nil
	}
	if _, ok := schema.ValidDatabaseBackends[name]; !ok {
		return "", fmt.Errorf("invalid backend %q: must be sqlite, mysql, postgresql or none", raw)
	}
	return name, nil
}

// parseBoolish accepts yes/no/true/false/1/0 with a fallback for empty input.
func parseBoolish(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
