package version

import (
	"runtime/debug"
	"testing"
)

func TestIsDevelopmentVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"unknown", true},
		{"dev", true},
		{"devel", true},
		{"devel+abc123", true},
		{"devel+abc+dirty", true},

		{"v0.1.0", false},
		{"1.0.0-rc.1", false},

		// Partial matches are releases
		{"develop", false},
		{"my-devel", false},
		{"DEV", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := IsDevelopmentVersion(tt.input)
			if got != tt.expected {
				t.Errorf("IsDevelopmentVersion(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFromBuildInfo(t *testing.T) {
	vcs := func(rev, modified string) *debug.BuildInfo {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: rev},
				{Key: "vcs.modified", Value: modified},
			},
		}
	}

	tests := []struct {
		name string
		v    string
		info *debug.BuildInfo
		want string
	}{
		{"injected version wins", "v1.2.3", vcs("abc", "false"), "v1.2.3"},
		{"no build info", "dev", nil, "dev"},
		{"module version", "dev", &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, "v0.4.0"},
		{"short revision", "dev", vcs("abc123", "false"), "devel+abc123"},
		{"long revision truncated", "dev", vcs("0123456789abcdef", "false"), "devel+0123456789ab"},
		{"dirty tree", "dev", vcs("abc123", "true"), "devel+abc123+dirty"},
		{"devel without vcs", "dev", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromBuildInfo(tt.v, tt.info); got != tt.want {
				t.Errorf("FromBuildInfo(%q) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
