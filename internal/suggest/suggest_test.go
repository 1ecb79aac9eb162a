package suggest

import (
	"reflect"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"create", "create", 0},
		{"craete", "create", 2},
		{"remov", "remove", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClosest(t *testing.T) {
	ops := []string{"create", "update", "remove", "restore", "undo", "list", "show"}

	tests := []struct {
		unknown string
		valid   []string
		want    []string
	}{
		{"craete", ops, []string{"create"}},
		{"remov", ops, []string{"remove"}},
		{"LIST", ops, []string{"list"}},
		{"--latncy", []string{"--latency", "--backend"}, []string{"--latency"}},
		{"explode", ops, nil},
		{"", ops, nil},
	}
	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			got := Closest(tt.unknown, tt.valid)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Closest(%q) = %v, want %v", tt.unknown, got, tt.want)
			}
		})
	}
}

func TestHint(t *testing.T) {
	if got := Hint("shwo", []string{"show", "list"}); got != " (did you mean show?)" {
		t.Errorf("Hint = %q", got)
	}
	if got := Hint("zzzzzz", []string{"show"}); got != "" {
		t.Errorf("Hint = %q, want empty", got)
	}
}
