package config

import "fmt"

// CycleError reports that a feature bundle or style reference graph
// contains a cycle, naming the path that closed the loop.
type CycleError struct {
	Kind string // "feature" or "style"
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("config: %s reference cycle: %v", e.Kind, append(append([]string{}, e.Path...), e.Path[0]))
}

// builtinFeatureBundles are the named presets a run can opt into via
// Features, analogous to the original's "diff-highlight"/"diff-so-fancy"
// builtin presets: each is a flat settings overlay, and may itself list
// other bundles to pull in first via its own "features" entry.
func builtinFeatureBundles() map[string]map[string]any {
	return map[string]map[string]any{
		"diff-highlight": {
			"minus-style":      "red",
			"plus-style":       "green",
			"minus-emph-style": "red reverse",
			"plus-emph-style":  "green reverse",
		},
		"diff-so-fancy": {
			"features":         []string{"diff-highlight"},
			"commit-style":     "bold yellow",
			"file-style":       "bold 11",
			"hunk-header-style": "bold syntax",
		},
		"line-numbers": {
			"line-numbers": true,
		},
	}
}

// ResolveFeatures expands cfg.Features into a single flat settings
// overlay, applied over cfg.FeatureBundles merged with the builtins
// (explicit bundles in cfg win over same-named builtins). Each bundle
// is expanded depth-first, so a bundle's own nested "features" entry is
// applied before the bundle's own direct settings, letting later bundles
// in the list — and a bundle's own keys over the bundles it pulls in —
// take precedence. A cycle among bundle names is reported as a
// *CycleError rather than looping forever.
func ResolveFeatures(names []string, bundles map[string]map[string]any) (map[string]any, error) {
	all := builtinFeatureBundles()
	for name, settings := range bundles {
		all[name] = settings
	}

	resolved := map[string]any{}
	visiting := map[string]bool{}
	visited := map[string]bool{}
	var path []string

	var expand func(name string) error
	expand = func(name string) error {
		if visited[name] {
			return nil
		}
		if visiting[name] {
			return &CycleError{Kind: "feature", Path: append(path, name)}
		}
		bundle, ok := all[name]
		if !ok {
			return fmt.Errorf("config: unknown feature bundle %q", name)
		}
		visiting[name] = true
		path = append(path, name)

		if nested, ok := bundle["features"].([]string); ok {
			for _, n := range nested {
				if err := expand(n); err != nil {
					return err
				}
			}
		}
		for k, v := range bundle {
			if k == "features" {
				continue
			}
			resolved[k] = v
		}

		path = path[:len(path)-1]
		visiting[name] = false
		visited[name] = true
		return nil
	}

	for _, name := range names {
		if err := expand(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}
