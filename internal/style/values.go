package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrInvalidColor is returned for a color that is neither a known name
	// nor #RRGGBB / #AARRGGBB.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidDimension is returned for a length that is not a number with
	// an optional px, dp, dip or sp unit.
	ErrInvalidDimension = errors.New("invalid dimension")
)

var namedColors = map[string]uint32{
	"black":       0xFF000000,
	"darkgray":    0xFF444444,
	"darkgrey":    0xFF444444,
	"gray":        0xFF888888,
	"grey":        0xFF888888,
	"lightgray":   0xFFCCCCCC,
	"lightgrey":   0xFFCCCCCC,
	"white":       0xFFFFFFFF,
	"red":         0xFFFF0000,
	"green":       0xFF00FF00,
	"blue":        0xFF0000FF,
	"yellow":      0xFFFFFF00,
	"cyan":        0xFF00FFFF,
	"magenta":     0xFFFF00FF,
	"aqua":        0xFF00FFFF,
	"fuchsia":     0xFFFF00FF,
	"lime":        0xFF00FF00,
	"maroon":      0xFF800000,
	"navy":        0xFF000080,
	"olive":       0xFF808000,
	"purple":      0xFF800080,
	"silver":      0xFFC0C0C0,
	"teal":        0xFF008080,
	"transparent": 0x00000000,
}

// ParseColor accepts #RRGGBB, #AARRGGBB, a color name, or an integer holding
// 0xAARRGGBB. Negative integers are read as signed 32-bit ARGB values.
func ParseColor(value any) (color.NRGBA, error) {
	s, ok := value.(string)
	if !ok {
		n, err := cast.ToInt64E(value)
		if err != nil || n < math.MinInt32 || n > math.MaxUint32 {
			return color.NRGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, value)
		}
		return argb(uint32(n)), nil
	}
	s = strings.TrimSpace(s)
	if n, ok := namedColors[strings.ToLower(s)]; ok {
		return argb(n), nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		n |= 0xFF000000
	}
	return argb(uint32(n)), nil
}

// FormatColor renders c as #AARRGGBB.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X%02X", n.A, n.R, n.G, n.B)
}

func argb(n uint32) color.NRGBA {
	return color.NRGBA{A: uint8(n >> 24), R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
}

// Metrics converts density independent units to pixels.
type Metrics struct {
	// Density is pixels per dp.
	Density float64
	// ScaledDensity is pixels per sp.
	ScaledDensity float64
}

// DefaultMetrics maps every unit one to one.
func DefaultMetrics() Metrics { return Metrics{Density: 1, ScaledDensity: 1} }

var units = []struct {
	suffix string
	factor func(m Metrics) float64
}{
	{"dip", func(m Metrics) float64 { return m.Density }},
	{"dp", func(m Metrics) float64 { return m.Density }},
	{"sp", func(m Metrics) float64 { return m.ScaledDensity }},
	{"px", func(Metrics) float64 { return 1 }},
}

// Dimension converts a length such as 15, "15", "15px", "4dp" or "12sp" to
// pixels.
func (m Metrics) Dimension(value any) (float64, error) {
	s, ok := value.(string)
	if !ok {
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDimension, value)
		}
		return f, nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	factor := 1.0
	for _, u := range units {
		if num, ok := strings.CutSuffix(s, u.suffix); ok {
			s = strings.TrimSpace(num)
			factor = u.factor(m)
			break
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, value)
	}
	return f * factor, nil
}
