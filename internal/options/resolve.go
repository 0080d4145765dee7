package options

import (
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"
)

type setter func(o *Options, value any) bool

var setters = map[string]setter{
	"faceBorderColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Face.BorderColor }),
	"faceBorderWidth":   numberKey(func(o *Options) *float64 { return &o.Face.BorderWidth }),
	"faceCenterColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Face.CenterColor }),
	"faceEdgeColor":     colorKey(func(o *Options) *color.NRGBA { return &o.Face.EdgeColor }),
	"faceShadowColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Face.Shadow.Color }),
	"faceShadowOffsetX": numberKey(func(o *Options) *float64 { return &o.Face.Shadow.OffsetX }),
	"faceShadowOffsetY": numberKey(func(o *Options) *float64 { return &o.Face.Shadow.OffsetY }),
	"faceShadowBlur":    numberKey(func(o *Options) *float64 { return &o.Face.Shadow.Blur }),

	"digitsColor":         colorKey(func(o *Options) *color.NRGBA { return &o.Face.DigitsColor }),
	"digitsFont":          fontKey(func(o *Options) *Font { return &o.Face.DigitsFont }),
	"digitsShadowColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Face.DigitsShadow.Color }),
	"digitsShadowOffsetX": numberKey(func(o *Options) *float64 { return &o.Face.DigitsShadow.OffsetX }),
	"digitsShadowOffsetY": numberKey(func(o *Options) *float64 { return &o.Face.DigitsShadow.OffsetY }),
	"digitsShadowBlur":    numberKey(func(o *Options) *float64 { return &o.Face.DigitsShadow.Blur }),
	"digitsOffset":        numberKey(func(o *Options) *float64 { return &o.Face.DigitsOffset }),

	"marksColor":        colorKey(func(o *Options) *color.NRGBA { return &o.Face.MarksColor }),
	"marksOffset":       numberKey(func(o *Options) *float64 { return &o.Face.MarksOffset }),
	"marksOtherRadius":  numberKey(func(o *Options) *float64 { return &o.Face.MarksOtherRadius }),
	"marksDigitsRadius": numberKey(func(o *Options) *float64 { return &o.Face.MarksDigitsRadius }),

	"arrowsLineCap":       lineCapKey,
	"arrowsShadowColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Arrows.Shadow.Color }),
	"arrowsShadowOffsetX": numberKey(func(o *Options) *float64 { return &o.Arrows.Shadow.OffsetX }),
	"arrowsShadowOffsetY": numberKey(func(o *Options) *float64 { return &o.Arrows.Shadow.OffsetY }),
	"arrowsShadowBlur":    numberKey(func(o *Options) *float64 { return &o.Arrows.Shadow.Blur }),
	"arrowHoursColor":     colorKey(func(o *Options) *color.NRGBA { return &o.Arrows.Hours.Color }),
	"arrowHoursWidth":     numberKey(func(o *Options) *float64 { return &o.Arrows.Hours.Width }),
	"arrowHoursOffset":    numberKey(func(o *Options) *float64 { return &o.Arrows.Hours.Offset }),
	"arrowMinutesColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Arrows.Minutes.Color }),
	"arrowMinutesWidth":   numberKey(func(o *Options) *float64 { return &o.Arrows.Minutes.Width }),
	"arrowMinutesOffset":  numberKey(func(o *Options) *float64 { return &o.Arrows.Minutes.Offset }),
	"arrowSecondsColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Arrows.Seconds.Color }),
	"arrowSecondsWidth":   numberKey(func(o *Options) *float64 { return &o.Arrows.Seconds.Width }),
	"arrowSecondsOffset":  numberKey(func(o *Options) *float64 { return &o.Arrows.Seconds.Offset }),
	"arrowsCenterColor":   colorKey(func(o *Options) *color.NRGBA { return &o.Arrows.CenterColor }),
	"arrowsCenterRadius":  numberKey(func(o *Options) *float64 { return &o.Arrows.CenterRadius }),

	"margin": numberKey(func(o *Options) *float64 { return &o.Margin }),
	"isWork": boolKey(func(o *Options) *bool { return &o.IsWork }),
}

// Resolve merges overrides onto the defaults, caller wins. Keys that are not
// recognized, or whose value cannot be used, are skipped and returned sorted.
func Resolve(overrides map[string]any) (Options, []string) {
	opts := Default()
	var ignored []string
	for key, value := range overrides {
		set, ok := setters[key]
		if !ok || !set(&opts, value) {
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)
	return opts, ignored
}

// Keys lists every recognized option key.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for key := range setters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func colorKey(field func(*Options) *color.NRGBA) setter {
	return func(o *Options, value any) bool {
		c, ok := toColor(value)
		if ok {
			*field(o) = c
		}
		return ok
	}
}

func numberKey(field func(*Options) *float64) setter {
	return func(o *Options, value any) bool {
		n, ok := toNumber(value)
		if ok {
			*field(o) = n
		}
		return ok
	}
}

func boolKey(field func(*Options) *bool) setter {
	return func(o *Options, value any) bool {
		switch v := value.(type) {
		case bool:
			*field(o) = v
			return true
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return false
			}
			*field(o) = b
			return true
		}
		return false
	}
}

func fontKey(field func(*Options) *Font) setter {
	return func(o *Options, value any) bool {
		switch v := value.(type) {
		case Font:
			*field(o) = v
			return true
		case string:
			f, err := ParseFont(v)
			if err != nil {
				return false
			}
			*field(o) = f
			return true
		}
		return false
	}
}

func lineCapKey(o *Options, value any) bool {
	var name string
	switch v := value.(type) {
	case LineCap:
		name = string(v)
	case string:
		name = v
	default:
		return false
	}
	switch lc := LineCap(strings.ToLower(strings.TrimSpace(name))); lc {
	case CapRound, CapButt, CapSquare:
		o.Arrows.LineCap = lc
		return true
	}
	return false
}

func toNumber(value any) (float64, bool) {
	n, ok := rawNumber(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func rawNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
		return n, err == nil
	}
	return 0, false
}
