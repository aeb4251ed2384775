package constants

// CategoryStatus is the per-category outcome of one processing run.
type CategoryStatus string

// Stable values (these exact strings go over the wire).
const (
	StatusOK      CategoryStatus = "OK"      // fields extracted and stored
	StatusFailed  CategoryStatus = "FAILED"  // extraction, provider or parse failure
	StatusSkipped CategoryStatus = "SKIPPED" // no file uploaded for the category
)
