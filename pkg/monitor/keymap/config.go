// Package keymap provides user-configurable key bindings for the monitor.
// Overrides come from the "keymap" section of the config file.
package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/sbpo/datapoints/internal/suggest"
)

// ApplyConfig applies user overrides to the registry. Each entry maps
// "context:key" (or a bare key, meaning global) to a command ID, e.g.
// {"main:d": "remove", "form:ctrl+k": "form-clear-title"}.
// Invalid entries are reported together and none of them is applied.
func ApplyConfig(r *Registry, overrides map[string]string) error {
	var errs []error
	type override struct {
		ctx Context
		key string
		cmd Command
	}
	var valid []override

	// Sorted so error messages come out in a stable order
	bindings := make([]string, 0, len(overrides))
	for b := range overrides {
		bindings = append(bindings, b)
	}
	sort.Strings(bindings)

	for _, binding := range bindings {
		ctx, key := parseBinding(binding)
		cmd := Command(overrides[binding])
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("keymap %q: missing key", binding))
		case !slices.Contains(Contexts(), ctx):
			errs = append(errs, fmt.Errorf("keymap %q: unknown context %q", binding, ctx))
		case !slices.Contains(AllCommands(), cmd):
			errs = append(errs, fmt.Errorf("keymap %q: unknown command %q%s", binding, cmd, suggest.Hint(string(cmd), commandNames())))
		default:
			valid = append(valid, override{ctx, key, cmd})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, o := range valid {
		r.SetUserOverride(o.ctx, o.key, o.cmd)
	}
	return nil
}

func commandNames() []string {
	cmds := AllCommands()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = string(c)
	}
	return names
}

// parseBinding parses a "context:key" string into context and key parts.
func parseBinding(s string) (Context, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return Context(s[:i]), s[i+1:]
		}
	}
	// If no colon, assume global context
	return ContextGlobal, s
}

// ExampleConfig returns an example override set for documentation
func ExampleConfig() map[string]string {
	return map[string]string{
		"main:d":        "remove",
		"main:a":        "new-record",
		"global:ctrl+q": "quit",
	}
}
