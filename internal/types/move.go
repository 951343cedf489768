package types

type (
	// MoveResult contains the result of a move, rename or extension change.
	MoveResult struct {
		Success bool   `json:"success" yaml:"success"`
		OldPath string `json:"oldPath" yaml:"old_path"`
		NewPath string `json:"newPath" yaml:"new_path"`
		DryRun  bool   `json:"dryRun,omitempty" yaml:"dry_run,omitempty"`
		Message string `json:"message,omitempty" yaml:"message,omitempty"`
	}
)
