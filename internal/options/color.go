package options

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts CSS color names, #rgb, #rrggbb, #rrggbbaa, rgb() and rgba().
func ParseColor(value string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", value)
}

func toColor(value any) (color.NRGBA, bool) {
	switch v := value.(type) {
	case string:
		c, err := ParseColor(v)
		return c, err == nil
	case color.Color:
		return color.NRGBAModel.Convert(v).(color.NRGBA), true
	}
	return color.NRGBA{}, false
}

func parseHex(hex string) (color.NRGBA, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad hex color length %d", len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color: %w", err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseFunctional(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("unterminated color %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("color %q needs 3 or 4 components", s)
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q component %d: %w", s, i, err)
		}
		channels[i] = uint8(math.Max(0, math.Min(255, math.Round(n))))
	}
	a := 1.0
	if len(parts) == 4 {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q alpha: %w", s, err)
		}
		a = n
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha(a)}, nil
}

func alpha(a float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(a*255))))
}
