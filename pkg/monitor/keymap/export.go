package keymap

import (
	"sort"
	"strings"
)

// ExportedBinding is a flattened binding for `dp keys` output
type ExportedBinding struct {
	Context     string `json:"context" yaml:"context"`
	Key         string `json:"key" yaml:"key"`
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description" yaml:"description"`
	Override    bool   `json:"override,omitempty" yaml:"override,omitempty"`
}

// ExportBindings returns every binding and user override, sorted by
// context then key.
func (r *Registry) ExportBindings() []ExportedBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []ExportedBinding
	for ctx, bindings := range r.bindings {
		for _, b := range bindings {
			result = append(result, ExportedBinding{
				Context:     string(ctx),
				Key:         b.Key,
				Command:     string(b.Command),
				Description: CommandHelp(b.Command),
			})
		}
	}
	for k, cmd := range r.userOverrides {
		ctx, key, _ := strings.Cut(k, ":")
		result = append(result, ExportedBinding{
			Context:     ctx,
			Key:         key,
			Command:     string(cmd),
			Description: CommandHelp(cmd),
			Override:    true,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Context != result[j].Context {
			return result[i].Context < result[j].Context
		}
		if result[i].Key != result[j].Key {
			return result[i].Key < result[j].Key
		}
		return result[i].Override && !result[j].Override
	})
	return result
}
