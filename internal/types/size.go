package types

type (
	// SizeResult reports the aggregate byte size of a file or directory.
	SizeResult struct {
		Path  string `json:"path" yaml:"path"`
		Bytes int64  `json:"bytes" yaml:"bytes"`
		Human string `json:"human,omitempty" yaml:"human,omitempty"`
	}

	// NameInfo describes the name parts of a path.
	NameInfo struct {
		Path      string `json:"path" yaml:"path"`
		Base      string `json:"base" yaml:"base"`
		Extension string `json:"extension" yaml:"extension"`
	}
)
