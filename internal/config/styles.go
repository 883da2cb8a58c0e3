package config

import (
	"fmt"

	"github.com/ibro45/diffpaint/internal/style"
)

// isStyleReference reports whether raw names another style role rather
// than being a style string itself: a bare "<name>-style" token with no
// spaces, matching the original's convention of style values that are
// themselves a reference.
func isStyleReference(raw string) bool {
	if len(raw) == 0 {
		return false
	}
	for _, r := range raw {
		if r == ' ' {
			return false
		}
	}
	const suffix = "-style"
	return len(raw) > len(suffix) && raw[len(raw)-len(suffix):] == suffix
}

// ResolveStyles resolves cfg.Styles into concrete style.Style values,
// following "<name>-style" references to other roles until a literal
// style string is reached. A reference cycle is reported as a
// *CycleError instead of looping forever.
func ResolveStyles(raw map[string]string) (map[string]style.Style, error) {
	resolved := make(map[string]style.Style, len(raw))

	var resolve func(node string, visited map[string]bool, path []string) (style.Style, error)
	resolve = func(node string, visited map[string]bool, path []string) (style.Style, error) {
		if s, ok := resolved[node]; ok {
			return s, nil
		}
		if visited[node] {
			return style.Style{}, &CycleError{Kind: "style", Path: append(path, node)}
		}
		value, ok := raw[node]
		if !ok {
			return style.Style{}, fmt.Errorf("config: style role %q has no value", node)
		}

		if isStyleReference(value) {
			visited[node] = true
			path = append(path, node)
			s, err := resolve(value, visited, path)
			if err != nil {
				return style.Style{}, err
			}
			resolved[node] = s
			return s, nil
		}

		s, err := style.Parse(value)
		if err != nil {
			return style.Style{}, fmt.Errorf("config: style role %q: %w", node, err)
		}
		resolved[node] = s
		return s, nil
	}

	for node := range raw {
		if _, err := resolve(node, map[string]bool{}, nil); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}
