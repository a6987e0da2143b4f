package schedule

// CancelResult reports the outcome of a batch cancellation. Individual
// failures never abort the batch.
type CancelResult struct {
	CancelledCount int `json:"cancelled_count"`
	FailedCount    int `json:"failed_count"`
}
