package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geohaz-data/ada.viewer/internal/velocity"
)

func TestResolveCategoricalScales(t *testing.T) {
	tests := []struct {
		attribute string
		classes   []string
	}{
		{"ada_major_class", TrendClasses},
		{"trend_class", TrendClasses},
		{"ada_major_subclass", TrendSubclasses},
		{"trend_subclass", TrendSubclasses},
		{"mean_velocity", velocity.Classes},
		{"mean_velocity_grp", velocity.Classes},
	}
	for _, tt := range tests {
		t.Run(tt.attribute, func(t *testing.T) {
			scale := Resolve(tt.attribute)
			require.True(t, scale.Categorical)
			assert.Empty(t, cmp.Diff(tt.classes, scale.Classes))
			assert.Len(t, scale.Colors, len(scale.Classes),
				"classes and colorscale must be parallel lists")
		})
	}
}

func TestResolveContinuousScales(t *testing.T) {
	for _, attr := range []string{"label_prob", "mp_label_prob", "stable_prop", "n_ada_points"} {
		scale := Resolve(attr)
		assert.False(t, scale.Categorical, attr)
		assert.Nil(t, scale.Classes, attr)
		assert.NotEmpty(t, scale.Colors, attr)
	}
}

func TestRenderProp(t *testing.T) {
	tests := []struct {
		attribute string
		layer     Layer
		want      string
	}{
		{"mean_velocity", LayerPolygon, "mean_velocity_grp"},
		{"mean_velocity", LayerPoint, "mean_velocity_grp"},
		{"ada_major_class", LayerPolygon, "ada_major_class"},
		{"ada_major_class", LayerPoint, "trend_class"},
		{"ada_major_subclass", LayerPoint, "trend_subclass"},
		{"label_prob", LayerPoint, "mp_label_prob"},
		{"label_prob", LayerPolygon, "label_prob"},
		{"stable_prop", LayerPolygon, "stable_prop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RenderProp(tt.attribute, tt.layer),
			"%s on %s", tt.attribute, tt.layer)
	}
}

func TestRuleForPolygons(t *testing.T) {
	rule := RuleForPolygons("mean_velocity")
	assert.Equal(t, "mean_velocity_grp", rule.ColorProp)
	assert.Equal(t, velocity.Classes, rule.Classes)
	require.Len(t, rule.Colorscale, len(rule.Classes))
	// Ordinal alignment: the stable bin is the 4th entry.
	assert.Equal(t, velocity.Stable, rule.Classes[3])
	assert.Equal(t, "lime", rule.Colorscale[3])
}

func TestRuleForPoints(t *testing.T) {
	rule := RuleForPoints("ada_major_class")
	assert.Equal(t, "trend_class", rule.ColorProp)
	require.NotNil(t, rule.ColorDict)
	assert.Equal(t, "#4daf4a", rule.ColorDict["stable"])
	assert.Equal(t, "#e41a1c", rule.ColorDict["step"])
	assert.Nil(t, rule.Gradient)

	cont := RuleForPoints("label_prob")
	assert.Equal(t, "mp_label_prob", cont.ColorProp)
	assert.Nil(t, cont.ColorDict)
	assert.Equal(t, []string{"blue", "white"}, cont.Gradient)
}
