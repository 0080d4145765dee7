package options

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFont reads a CSS font shorthand such as
// "bold 30px Helvetica, Verdana, sans-serif". The size is required.
func ParseFont(value string) (Font, error) {
	var f Font
	fields := strings.Fields(value)
	for i, field := range fields {
		lower := strings.ToLower(field)
		switch lower {
		case "normal":
			continue
		case "bold", "bolder":
			f.Bold = true
			continue
		case "italic", "oblique":
			f.Italic = true
			continue
		}
		if weight, err := strconv.Atoi(lower); err == nil {
			f.Bold = weight >= 600
			continue
		}
		size, ok := parseFontSize(lower)
		if !ok {
			return Font{}, fmt.Errorf("font %q: unexpected %q before size", value, field)
		}
		f.Size = size
		f.Family = strings.Join(fields[i+1:], " ")
		return f, nil
	}
	return Font{}, fmt.Errorf("font %q has no size", value)
}

func parseFontSize(token string) (float64, bool) {
	// "30px/1.2" carries a line height we have no use for.
	if slash := strings.IndexByte(token, '/'); slash >= 0 {
		token = token[:slash]
	}
	points := false
	switch {
	case strings.HasSuffix(token, "px"):
		token = strings.TrimSuffix(token, "px")
	case strings.HasSuffix(token, "pt"):
		token = strings.TrimSuffix(token, "pt")
		points = true
	default:
		return 0, false
	}
	n, err := strconv.ParseFloat(token, 64)
	if err != nil || !(n > 0) || math.IsInf(n, 0) {
		return 0, false
	}
	if points {
		return n * 4 / 3, true
	}
	return n, true
}

func (f Font) String() string {
	var parts []string
	if f.Italic {
		parts = append(parts, "italic")
	}
	if f.Bold {
		parts = append(parts, "bold")
	}
	parts = append(parts, strconv.FormatFloat(f.Size, 'f', -1, 64)+"px")
	if f.Family != "" {
		parts = append(parts, f.Family)
	}
	return strings.Join(parts, " ")
}
