package domain

import "time"

// RunInfo records the fingerprint of a task's last successful run.
// A task declaring inputs is skipped when its current input fingerprint
// matches the stored one and its declared outputs still exist.
type RunInfo struct {
	TaskName   string    `json:"task_name,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
