// Package style resolves the thematic styling for a chosen colour
// attribute: the ordered class list, the matching colour list, and the
// per-layer render rule the map client consumes. Attributes are either
// categorical (discrete class -> colour) or continuous (gradient stops);
// callers must branch on the scale kind before picking a renderer.
package style

import "github.com/geohaz-data/ada.viewer/internal/velocity"

// Layer selects which feature collection a rule styles.
type Layer string

const (
	LayerPolygon Layer = "polygon"
	LayerPoint   Layer = "point"
)

// TrendClasses are the 5 trend-model categories, in display order.
var TrendClasses = []string{"stable", "linear", "quadratic", "changepoint", "step"}

// TrendSubclasses are the 10 trend-subclass categories, in display order.
var TrendSubclasses = []string{
	"stable", "active-stable", "gradual-deceleration", "stable-active",
	"gradual-acceleration", "rebound", "active-constant",
	"active-acceleration", "active-deceleration", "active-dir-change",
}

var trendClassColors = []string{"#4daf4a", "#377eb8", "#ff7f00", "#984ea3", "#e41a1c"}

var trendSubclassColors = []string{
	"green", "blue", "lightblue", "red", "salmon",
	"deeppink", "orange", "purple", "yellow", "black",
}

var velocityGroupColors = []string{
	"red", "orange", "yellow", "lime", "aquamarine", "darkturquoise", "blue",
}

var (
	labelProbStops  = []string{"blue", "white"}
	stablePropStops = []string{"red", "white"}
	defaultStops    = []string{"blue", "white", "red"}
)

// Scale is the closed variant over categorical and continuous colour
// scales. Categorical scales carry parallel Classes/Colors lists consumed
// by ordinal position; continuous scales carry only gradient stops.
type Scale struct {
	Categorical bool     `json:"categorical"`
	Classes     []string `json:"classes,omitempty"`
	Colors      []string `json:"colors"`
}

// Resolve returns the scale for a colour attribute. Unrecognised
// attributes degrade to a generic continuous gradient.
func Resolve(attribute string) Scale {
	switch attribute {
	case "ada_major_class", "trend_class":
		return Scale{Categorical: true, Classes: TrendClasses, Colors: trendClassColors}
	case "ada_major_subclass", "trend_subclass":
		return Scale{Categorical: true, Classes: TrendSubclasses, Colors: trendSubclassColors}
	case "mean_velocity", "mean_velocity_grp":
		return Scale{Categorical: true, Classes: velocity.Classes, Colors: velocityGroupColors}
	case "label_prob", "mp_label_prob":
		return Scale{Colors: labelProbStops}
	case "stable_prop":
		return Scale{Colors: stablePropStops}
	default:
		return Scale{Colors: defaultStops}
	}
}

// Classes returns the ordered class labels for an attribute, or nil for a
// continuous attribute.
func Classes(attribute string) []string {
	return Resolve(attribute).Classes
}

// Colorscale returns the ordered colour list for an attribute,
// index-aligned with Classes for categorical attributes.
func Colorscale(attribute string) []string {
	return Resolve(attribute).Colors
}

// RenderProp translates a user-facing colour attribute into the feature
// property the renderer actually reads. Velocity colours key off the
// derived group label on both layers; on the point layer the ADA-level
// attribute names alias to their per-point counterparts. Skipping this
// translation makes point styling silently match nothing.
func RenderProp(attribute string, layer Layer) string {
	if attribute == "mean_velocity" {
		return "mean_velocity_grp"
	}
	if layer == LayerPoint {
		switch attribute {
		case "ada_major_class":
			return "trend_class"
		case "ada_major_subclass":
			return "trend_subclass"
		case "label_prob":
			return "mp_label_prob"
		}
	}
	return attribute
}

// PolygonRule is the style lookup consumed by the polygon renderer: the
// colour for a feature is colorscale[i] where classes[i] equals the
// feature's colorProp value.
type PolygonRule struct {
	Classes    []string  `json:"classes"`
	Colorscale []string  `json:"colorscale"`
	ColorProp  string    `json:"colorProp"`
	Style      BaseStyle `json:"style"`
}

// PointRule is the style lookup consumed by the point renderer: colours
// are matched by exact value against ColorDict, keyed by the render
// property. Continuous attributes carry gradient stops instead.
type PointRule struct {
	ColorProp     string            `json:"colorProp"`
	ColorDict     map[string]string `json:"color_dict,omitempty"`
	Gradient      []string          `json:"gradient,omitempty"`
	CircleOptions CircleOptions     `json:"circleOptions"`
}

// BaseStyle carries the polygon outline defaults.
type BaseStyle struct {
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	Color       string  `json:"color"`
	DashArray   string  `json:"dashArray"`
	FillOpacity float64 `json:"fillOpacity"`
}

// CircleOptions carries the point marker defaults.
type CircleOptions struct {
	Radius      float64 `json:"radius"`
	Stroke      bool    `json:"stroke"`
	FillOpacity float64 `json:"fillOpacity"`
}

// RuleForPolygons resolves the polygon-layer style rule for an attribute.
func RuleForPolygons(attribute string) PolygonRule {
	scale := Resolve(attribute)
	return PolygonRule{
		Classes:    scale.Classes,
		Colorscale: scale.Colors,
		ColorProp:  RenderProp(attribute, LayerPolygon),
		Style: BaseStyle{
			Weight:      1,
			Opacity:     1,
			Color:       "black",
			DashArray:   "3",
			FillOpacity: 0.7,
		},
	}
}

// RuleForPoints resolves the point-layer style rule for an attribute.
func RuleForPoints(attribute string) PointRule {
	prop := RenderProp(attribute, LayerPoint)
	scale := Resolve(attribute)
	rule := PointRule{
		ColorProp: prop,
		CircleOptions: CircleOptions{
			Radius:      2.5,
			Stroke:      false,
			FillOpacity: 1,
		},
	}
	if scale.Categorical {
		rule.ColorDict = make(map[string]string, len(scale.Classes))
		for i, class := range scale.Classes {
			rule.ColorDict[class] = scale.Colors[i]
		}
	} else {
		rule.Gradient = scale.Colors
	}
	return rule
}
