package progress

import (
	"image/color"
	"slices"
)

// Default configuration values, in pixels where a length is meant.
const (
	DefaultTotalProgress = 184
	DefaultMarkerWidth   = 3
	DefaultCornerRadius  = 5
	DefaultTextMargin    = 10
	DefaultBarHeight     = 15
	DefaultBarWidth      = 300
	DefaultTextSize      = 12
)

// Default colors.
var (
	DefaultMarkerColor     = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	DefaultProgressColor   = color.NRGBA{G: 0xFF, A: 0xFF}
	DefaultBackgroundColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	DefaultTextColor       = color.NRGBA{A: 0xFF}
)

// Props is a snapshot of a View's configuration.
type Props struct {
	TotalProgress   int
	CurrentProgress int
	// Markers are progress values that get a tick and a label. They are
	// expected in [1, TotalProgress] and ascending; others are not drawn.
	Markers []int

	MarkerWidth  float64
	CornerRadius float64
	TextMargin   float64
	BarHeight    float64
	BarWidth     float64
	TextSize     float64

	MarkerColor     color.NRGBA
	ProgressColor   color.NRGBA
	BackgroundColor color.NRGBA
	TextColor       color.NRGBA
}

// DefaultProps returns the configuration a new View starts from.
func DefaultProps() Props {
	return Props{
		TotalProgress:   DefaultTotalProgress,
		MarkerWidth:     DefaultMarkerWidth,
		CornerRadius:    DefaultCornerRadius,
		TextMargin:      DefaultTextMargin,
		BarHeight:       DefaultBarHeight,
		BarWidth:        DefaultBarWidth,
		TextSize:        DefaultTextSize,
		MarkerColor:     DefaultMarkerColor,
		ProgressColor:   DefaultProgressColor,
		BackgroundColor: DefaultBackgroundColor,
		TextColor:       DefaultTextColor,
	}
}

func (p Props) clone() Props {
	p.Markers = slices.Clone(p.Markers)
	return p
}

// Prop names a configurable property.
type Prop int

const (
	PropTotalProgress Prop = iota
	PropCurrentProgress
	PropMarkers
	PropMarkerWidth
	PropCornerRadius
	PropTextMargin
	PropBarHeight
	PropBarWidth
	PropTextSize
	PropFont
	PropMarkerColor
	PropProgressColor
	PropBackgroundColor
	PropTextColor
	numProps
)

var propNames = [numProps]string{
	PropTotalProgress:   "totalProgress",
	PropCurrentProgress: "currentProgress",
	PropMarkers:         "markers",
	PropMarkerWidth:     "markerWidth",
	PropCornerRadius:    "cornerRadius",
	PropTextMargin:      "textMargin",
	PropBarHeight:       "barHeight",
	PropBarWidth:        "barWidth",
	PropTextSize:        "textSize",
	PropFont:            "font",
	PropMarkerColor:     "markerColor",
	PropProgressColor:   "progressColor",
	PropBackgroundColor: "backgroundColor",
	PropTextColor:       "textColor",
}

func (p Prop) String() string {
	if p < 0 || p >= numProps {
		return "unknown"
	}
	return propNames[p]
}

// Effect is what the host has to redo after a property changes.
type Effect int

const (
	// EffectRepaint means only the pixels change.
	EffectRepaint Effect = iota
	// EffectRelayout means the measured size may change.
	EffectRelayout
)

// propEffects classifies every property. Text margin counts toward the
// measured height, so it relayouts.
var propEffects = [numProps]Effect{
	PropTotalProgress:   EffectRelayout,
	PropCurrentProgress: EffectRepaint,
	PropMarkers:         EffectRelayout,
	PropMarkerWidth:     EffectRepaint,
	PropCornerRadius:    EffectRepaint,
	PropTextMargin:      EffectRelayout,
	PropBarHeight:       EffectRelayout,
	PropBarWidth:        EffectRelayout,
	PropTextSize:        EffectRelayout,
	PropFont:            EffectRelayout,
	PropMarkerColor:     EffectRepaint,
	PropProgressColor:   EffectRepaint,
	PropBackgroundColor: EffectRepaint,
	PropTextColor:       EffectRepaint,
}

// EffectOf reports how a change to p is propagated to the host.
func EffectOf(p Prop) Effect {
	if p < 0 || p >= numProps {
		return EffectRepaint
	}
	return propEffects[p]
}
