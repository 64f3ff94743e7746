package schema

// Custom string types for type safety.
type (
	// Condition represents a vehicle condition rank.
	Condition string

	// AdjustmentType represents the direction of an equipment adjustment.
	AdjustmentType string

	// ExplainKey represents keys used in quality score explanations.
	ExplainKey string

	// IssueSeverity represents the severity of a validation issue.
	IssueSeverity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All condition ranks supported, ordered Salvage < Poor < Fair < Good < Excellent.
const (
	ConditionSalvage   Condition = "Salvage"
	ConditionPoor      Condition = "Poor"
	ConditionFair      Condition = "Fair"
	ConditionGood      Condition = "Good"
	ConditionExcellent Condition = "Excellent"
)

// Equipment adjustment directions.
const (
	AdjustmentMissing AdjustmentType = "missing" // Loss vehicle has the feature, comparable does not
	AdjustmentExtra   AdjustmentType = "extra"   // Comparable has the feature, loss vehicle does not
)

// Explanation keys used in quality score breakdowns.
const (
	ExplainDistance  ExplainKey = "distance"
	ExplainAge       ExplainKey = "age"
	ExplainMileage   ExplainKey = "mileage"
	ExplainEquipment ExplainKey = "equipment"
)

// Validation issue severities.
const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// CalculationMethodWeightedAverage is the only calculation method implemented.
const CalculationMethodWeightedAverage = "quality-weighted-average"

// conditionRanks gives the total order used by condition adjustments and
// cross-field validation.
var conditionRanks = map[Condition]int{
	ConditionSalvage:   0,
	ConditionPoor:      1,
	ConditionFair:      2,
	ConditionGood:      3,
	ConditionExcellent: 4,
}

// AllConditions returns a list of all supported condition ranks, worst first.
var AllConditions = []Condition{
	ConditionSalvage,
	ConditionPoor,
	ConditionFair,
	ConditionGood,
	ConditionExcellent,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
