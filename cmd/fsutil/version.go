package main

import "runtime/debug"

var version = getVersion()

// getVersion derives "<short revision>[-dirty]" from the embedded VCS
// settings, falling back to the module version and then "dev".
func getVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	revision := settings["vcs.revision"]
	if revision == "" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		return "dev"
	}

	if len(revision) > 7 {
		revision = revision[:7]
	}
	if settings["vcs.modified"] == "true" {
		return revision + "-dirty"
	}
	return revision
}
