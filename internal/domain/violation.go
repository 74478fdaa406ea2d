package domain

type ViolationKind string

const (
	ViolationSeasonal     ViolationKind = "SEASONAL"
	ViolationCapacity     ViolationKind = "CAPACITY"
	ViolationTimeConflict ViolationKind = "TIME_CONFLICT"
	ViolationBudget       ViolationKind = "BUDGET"
)

type ViolationSeverity string

const (
	SeverityInfo    ViolationSeverity = "INFO"
	SeverityWarning ViolationSeverity = "WARNING"
	SeverityHigh    ViolationSeverity = "HIGH"
)

// ConstraintViolation records a rule a pipeline stage could not fully
// satisfy. Violations are non-fatal; they are returned alongside the trip so
// the caller can surface warnings.
type ConstraintViolation struct {
	Kind     ViolationKind
	Severity ViolationSeverity
	Message  string
}
