package types

type (
	// PathResult reports the outcome of an operation on a single path
	// (mkdir, delete, tempdir).
	PathResult struct {
		Success bool   `json:"success" yaml:"success"`
		Path    string `json:"path" yaml:"path"`
		Message string `json:"message,omitempty" yaml:"message,omitempty"`
	}

	// ExistsResult reports whether a path exists.
	ExistsResult struct {
		Path   string `json:"path" yaml:"path"`
		Exists bool   `json:"exists" yaml:"exists"`
	}
)
