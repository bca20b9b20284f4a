// Package style reads declarative progress bar styles from files, maps and
// the environment and applies them to a progress.View.
package style

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/edward-ap/stepprogress/internal/progress"
	"github.com/edward-ap/stepprogress/internal/typeface"
)

// Style keys. Lookups are case-insensitive.
const (
	KeyTotalProgress   = "totalProgress"
	KeyCurrentProgress = "currentProgress"
	KeyMarkers         = "markers"
	KeyMarkerWidth     = "markerWidth"
	KeyRectRadius      = "rectRadius"
	KeyTextMargin      = "textMargin"
	KeyBarHeight       = "progressBarHeight"
	KeyBarWidth        = "progressBarWidth"
	KeyTextSize        = "textSize"
	KeyBackgroundColor = "progressBackgroundColor"
	KeyMarkerColor     = "markerColor"
	KeyProgressColor   = "progressColor"
	KeyTextColor       = "textColor"
	KeyTextFont        = "textFont"
	KeyPreset          = "preset"
	KeyDensity         = "density"
	KeyScaledDensity   = "scaledDensity"
)

// EnvPrefix prefixes environment overrides, e.g. STEPPROGRESS_TEXTSIZE.
const EnvPrefix = "STEPPROGRESS"

// Bundle is a set of style attributes. Keys missing from the bundle keep the
// view's defaults.
type Bundle struct {
	v *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads a JSON, YAML or TOML style file. An empty path yields a bundle
// that only sees environment overrides.
func Load(path string) (*Bundle, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read style %s: %w", path, err)
		}
	}
	return &Bundle{v: v}, nil
}

// FromMap builds a bundle from in-memory attributes.
func FromMap(m map[string]any) *Bundle {
	v := newViper()
	if len(m) > 0 {
		_ = v.MergeConfigMap(m)
	}
	return &Bundle{v: v}
}

// Set overrides one attribute.
func (b *Bundle) Set(key string, value any) { b.v.Set(key, value) }

// IsSet reports whether the bundle or the environment provides key.
func (b *Bundle) IsSet(key string) bool { return b.v.IsSet(key) }

// String returns the attribute as a string, or "" when it is missing.
func (b *Bundle) String(key string) string { return cast.ToString(b.v.Get(key)) }

// Settings returns every attribute read from the bundle's sources.
func (b *Bundle) Settings() map[string]any { return b.v.AllSettings() }

// NewView builds a view configured from the bundle.
func (b *Bundle) NewView(host progress.Host) (*progress.View, error) {
	return progress.New(host, b.Apply)
}

// Metrics returns the density settings used for dp and sp lengths.
func (b *Bundle) Metrics() (Metrics, error) {
	m := DefaultMetrics()
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{KeyDensity, &m.Density},
		{KeyScaledDensity, &m.ScaledDensity},
	} {
		if !b.v.IsSet(f.key) {
			continue
		}
		d, err := cast.ToFloat64E(b.v.Get(f.key))
		if err != nil || d <= 0 {
			return m, fmt.Errorf("%s: %w: %v", f.key, ErrInvalidDimension, b.v.Get(f.key))
		}
		*f.dst = d
	}
	if !b.v.IsSet(KeyScaledDensity) {
		m.ScaledDensity = m.Density
	}
	return m, nil
}

// Apply writes every attribute present in the bundle into v. The preset goes
// first so explicit colors override it, and markers go last. The first
// invalid attribute aborts with an error naming its key.
func (b *Bundle) Apply(v *progress.View) error {
	m, err := b.Metrics()
	if err != nil {
		return err
	}

	if b.v.IsSet(KeyPreset) {
		name := b.String(KeyPreset)
		p, ok := FindPreset(name)
		if !ok {
			return fmt.Errorf("%s: unknown preset %q", KeyPreset, name)
		}
		ApplyPreset(p, v)
	}

	for _, k := range []string{KeyTotalProgress, KeyCurrentProgress} {
		if !b.v.IsSet(k) {
			continue
		}
		n, err := cast.ToIntE(b.v.Get(k))
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		if k == KeyTotalProgress {
			err = v.SetTotalProgress(n)
		} else {
			v.SetCurrentProgress(n)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	lengths := []struct {
		key string
		set func(float64) error
	}{
		{KeyMarkerWidth, func(f float64) error { v.SetMarkerWidth(f); return nil }},
		{KeyRectRadius, func(f float64) error { v.SetCornerRadius(f); return nil }},
		{KeyTextMargin, func(f float64) error { v.SetTextMargin(f); return nil }},
		{KeyBarHeight, v.SetBarHeight},
		{KeyBarWidth, v.SetBarWidth},
		{KeyTextSize, v.SetTextSize},
	}
	for _, l := range lengths {
		if !b.v.IsSet(l.key) {
			continue
		}
		f, err := m.Dimension(b.v.Get(l.key))
		if err != nil {
			return fmt.Errorf("%s: %w", l.key, err)
		}
		if err := l.set(f); err != nil {
			return fmt.Errorf("%s: %w", l.key, err)
		}
	}

	if b.v.IsSet(KeyTextFont) {
		path := b.String(KeyTextFont)
		if f, err := typeface.LoadFile(path, v.TextSize()); err != nil {
			log.Printf("style: %s %q: %v; using default font", KeyTextFont, path, err)
		} else {
			v.SetFont(f)
		}
	}

	colors := []struct {
		key string
		set func(c color.Color)
	}{
		{KeyBackgroundColor, func(c color.Color) { v.SetBackgroundColor(c) }},
		{KeyMarkerColor, func(c color.Color) { v.SetMarkerColor(c) }},
		{KeyProgressColor, func(c color.Color) { v.SetProgressColor(c) }},
		{KeyTextColor, func(c color.Color) { v.SetTextColor(c) }},
	}
	for _, c := range colors {
		if !b.v.IsSet(c.key) {
			continue
		}
		col, err := ParseColor(b.v.Get(c.key))
		if err != nil {
			return fmt.Errorf("%s: %w", c.key, err)
		}
		c.set(col)
	}

	if b.v.IsSet(KeyMarkers) {
		markers, err := parseMarkerValue(b.v.Get(KeyMarkers))
		if err != nil {
			return fmt.Errorf("%s: %w", KeyMarkers, err)
		}
		v.SetMarkers(markers)
	}
	return nil
}

// parseMarkerValue accepts "10,80,112" or a list of integers.
func parseMarkerValue(value any) ([]int, error) {
	switch val := value.(type) {
	case string:
		return progress.ParseMarkers(val)
	case []int:
		return val, nil
	}
	out, err := cast.ToIntSliceE(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", progress.ErrInvalidMarkers, value)
	}
	return out, nil
}
