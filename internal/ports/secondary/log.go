package secondary

// AnomalyLog receives series-bookkeeping anomalies that are tolerated
// rather than aborted on: a scoped edit whose expected sibling is missing
// proceeds with the available data, and the gap is reported here.
type AnomalyLog interface {
	// Anomaly records a tolerated inconsistency.
	Anomaly(format string, args ...any)
}
