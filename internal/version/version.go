// Package version works out the version string reported by dp.
package version

import (
	"runtime/debug"
	"strings"
)

// Resolve returns v when the build injected a real version, otherwise the
// best version the Go build info provides.
func Resolve(v string) string {
	info, _ := debug.ReadBuildInfo()
	return FromBuildInfo(v, info)
}

// FromBuildInfo picks a version from an injected value and build info.
// Module installs report their tag; source builds report the VCS revision
// as "devel+<rev>[+dirty]".
func FromBuildInfo(v string, info *debug.BuildInfo) string {
	if v != "" && v != "dev" {
		return v
	}
	if info == nil {
		return v
	}

	// When installed via `go install module@vX.Y.Z`, this will typically be `vX.Y.Z`.
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if rev == "" {
		return v
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	parts := []string{"devel", rev}
	if modified == "true" {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "+")
}

// IsDevelopmentVersion returns true for non-release versions.
func IsDevelopmentVersion(v string) bool {
	if v == "" || v == "unknown" || v == "dev" || v == "devel" {
		return true
	}
	return strings.HasPrefix(v, "devel+")
}
