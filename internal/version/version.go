// Package version reports build metadata for siptrackr.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/rnwolfe/siptrackr/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// dirty is true when the binary was built from a modified work tree.
var dirty bool

// Full returns "v1.2.3 (abc1234) 2024-01-01T00:00:00Z", with a "+dirty"
// marker on the commit when the tree was modified.
func Full() string {
	commit := Commit
	if dirty {
		commit += "+dirty"
	}
	return fmt.Sprintf("%s (%s) %s", Version, commit, Date)
}

// Short returns just the version string.
func Short() string {
	return Version
}

// Runtime describes the Go toolchain and platform.
func Runtime() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		apply(info)
	}
}

// apply fills Version, Commit and Date from build info wherever the ldflags
// default is still in place.
func apply(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	// "(devel)" means an untagged build; keep "dev".
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; Commit == "none" && rev != "" {
		Commit = rev[:min(len(rev), 7)]
	}
	if t := settings["vcs.time"]; Date == "unknown" && t != "" {
		Date = t
	}
	dirty = settings["vcs.modified"] == "true"
}
