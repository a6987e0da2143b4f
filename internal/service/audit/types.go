package audit

// CleanupResult reports an orphan-cancellation pass.
type CleanupResult struct {
	CancelledCount int `json:"cancelled_count"`
	FailedCount    int `json:"failed_count"`
}

// RepairResult reports a missing-handle repair pass. RepairedCount counts
// plans whose handle lists were rebuilt, not individual handles.
type RepairResult struct {
	RepairedCount int `json:"repaired_count"`
	FailedCount   int `json:"failed_count"`
}

// ResetResult reports a full system reset.
type ResetResult struct {
	RescheduledCount    int `json:"rescheduled_count"`
	HandlesCreatedCount int `json:"handles_created_count"`
	FailedCount         int `json:"failed_count"`
}

const (
	operationAudit   = "audit"
	operationCleanup = "cleanup_orphaned"
	operationRepair  = "repair_missing"
	operationReset   = "reset_system"
)
