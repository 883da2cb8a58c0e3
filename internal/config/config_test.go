package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStylesLiteral(t *testing.T) {
	styles, err := ResolveStyles(map[string]string{"minus-style": "red"})
	require.NoError(t, err)
	assert.Equal(t, "red", styles["minus-style"].Foreground.Named)
}

func TestResolveStylesFollowsReference(t *testing.T) {
	styles, err := ResolveStyles(map[string]string{
		"minus-emph-style": "minus-style",
		"minus-style":      "red",
	})
	require.NoError(t, err)
	assert.Equal(t, styles["minus-style"], styles["minus-emph-style"])
}

func TestResolveStylesDetectsCycle(t *testing.T) {
	_, err := ResolveStyles(map[string]string{
		"a-style": "b-style",
		"b-style": "a-style",
	})
	require.Error(t, err)
	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestResolveFeaturesExpandsNested(t *testing.T) {
	overrides, err := ResolveFeatures([]string{"diff-so-fancy"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "bold yellow", overrides["commit-style"])
	// Pulled in transitively from diff-highlight.
	assert.Equal(t, "red", overrides["minus-style"])
}

func TestResolveFeaturesDetectsCycle(t *testing.T) {
	bundles := map[string]map[string]any{
		"a": {"features": []string{"b"}},
		"b": {"features": []string{"a"}},
	}
	_, err := ResolveFeatures([]string{"a"}, bundles)
	require.Error(t, err)
	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestResolveFeaturesUnknownBundle(t *testing.T) {
	_, err := ResolveFeatures([]string{"does-not-exist"}, nil)
	assert.Error(t, err)
}

func TestFinalizeAppliesFeatureOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features = []string{"line-numbers"}
	require.NoError(t, Finalize(cfg))
	assert.True(t, cfg.ShowLineNumbers)
}

func TestDefaultConfigStylesResolve(t *testing.T) {
	cfg := DefaultConfig()
	_, err := ResolveStyles(cfg.Styles)
	require.NoError(t, err)
}
