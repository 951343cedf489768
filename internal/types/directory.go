// Package types defines the data structures shared by the CLI and the tool server.
package types

type (
	// FileListing contains the files found under a root.
	FileListing struct {
		Root  string   `json:"root" yaml:"root"`
		Files []string `json:"files" yaml:"files"`
		Count int      `json:"count" yaml:"count"`
	}

	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		IgnoredPatterns []string `json:"ignoredPatterns" yaml:"ignore"`
	}
)
