package options

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	opts := Default()
	assert.True(t, opts.IsWork)
	assert.Equal(t, 10.0, opts.Margin)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, opts.Arrows.Hours.Color)
	assert.Equal(t, 15.0, opts.Arrows.Hours.Width)
	assert.Equal(t, 100.0, opts.Arrows.Hours.Offset)
	assert.Equal(t, CapRound, opts.Arrows.LineCap)
	assert.Equal(t, color.NRGBA{A: 128}, opts.Face.Shadow.Color)
	assert.Equal(t, 30.0, opts.Face.DigitsFont.Size)
	assert.True(t, opts.Face.DigitsFont.Bold)
}

func TestResolveOverridesOnlyNamedKey(t *testing.T) {
	opts, ignored := Resolve(map[string]any{"arrowHoursColor": "blue"})
	require.Empty(t, ignored)

	want := Default()
	want.Arrows.Hours.Color = color.NRGBA{B: 255, A: 255}
	assert.Equal(t, want, opts)
}

func TestResolveIgnoresUnknownAndUnusable(t *testing.T) {
	opts, ignored := Resolve(map[string]any{
		"arrowHoursWidth": 20,
		"noSuchKey":       1,
		"marksOffset":     []int{1},
		"faceEdgeColor":   "not-a-color",
		"arrowsLineCap":   "pointy",
	})
	assert.Equal(t, []string{"arrowsLineCap", "faceEdgeColor", "marksOffset", "noSuchKey"}, ignored)
	assert.Equal(t, 20.0, opts.Arrows.Hours.Width)
	assert.Equal(t, Default().Face.EdgeColor, opts.Face.EdgeColor)
	assert.Equal(t, Default().Face.MarksOffset, opts.Face.MarksOffset)
}

func TestResolveIgnoresNonFinite(t *testing.T) {
	opts, ignored := Resolve(map[string]any{
		"margin":           "NaN",
		"arrowHoursOffset": "-Inf",
		"faceShadowBlur":   math.Inf(1),
		"marksOffset":      math.NaN(),
		"digitsFont":       "bold infpx Go",
		"isWork":           false,
	})
	assert.Equal(t, []string{"arrowHoursOffset", "digitsFont", "faceShadowBlur", "margin", "marksOffset"}, ignored)
	want := Default()
	want.IsWork = false
	assert.Equal(t, want, opts)
}

func TestLoadIgnoresNonFiniteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("margin: .nan\narrowHoursWidth: .inf\nmarksOffset: 40\n"), 0o644))

	opts, ignored, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"arrowHoursWidth", "margin"}, ignored)
	assert.Equal(t, 10.0, opts.Margin)
	assert.Equal(t, 15.0, opts.Arrows.Hours.Width)
	assert.Equal(t, 40.0, opts.Face.MarksOffset)
}

func TestResolveValueKinds(t *testing.T) {
	opts, ignored := Resolve(map[string]any{
		"isWork":             "false",
		"margin":             "4px",
		"arrowsLineCap":      "BUTT",
		"arrowsCenterColor":  color.RGBA{R: 10, G: 20, B: 30, A: 255},
		"digitsFont":         "italic 12pt Go",
		"arrowsShadowBlur":   float32(1.5),
		"arrowSecondsOffset": int64(7),
	})
	require.Empty(t, ignored)
	assert.False(t, opts.IsWork)
	assert.Equal(t, 4.0, opts.Margin)
	assert.Equal(t, CapButt, opts.Arrows.LineCap)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, opts.Arrows.CenterColor)
	assert.Equal(t, Font{Family: "Go", Italic: true, Size: 16}, opts.Face.DigitsFont)
	assert.Equal(t, 1.5, opts.Arrows.Shadow.Blur)
	assert.Equal(t, 7.0, opts.Arrows.Seconds.Offset)
}

func TestResolveDoesNotShareState(t *testing.T) {
	first, _ := Resolve(map[string]any{"marksColor": "#00ff00"})
	second, _ := Resolve(nil)
	assert.NotEqual(t, first.Face.MarksColor, second.Face.MarksColor)
	assert.Equal(t, Default(), second)
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"rgba(255, 0, 0, 1)":  {R: 255, A: 255},
		"rgba(0,0,0,0.5)":     {A: 128},
		"rgb(10, 20, 30)":     {R: 10, G: 20, B: 30, A: 255},
		"#fff":                {R: 255, G: 255, B: 255, A: 255},
		"#102030":             {R: 16, G: 32, B: 48, A: 255},
		"#10203080":           {R: 16, G: 32, B: 48, A: 128},
		" Red ":               {R: 255, A: 255},
		"rgba(300, -4, 0, 2)": {R: 255, A: 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "#12", "#zzzzzz", "rgba(1,2)", "rgb(1,2,3", "rgba(a,b,c,d)", "chartreusey"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseFont(t *testing.T) {
	f, err := ParseFont("bold 30px Helvetica, Verdana, sans-serif")
	require.NoError(t, err)
	assert.Equal(t, Font{Family: "Helvetica, Verdana, sans-serif", Bold: true, Size: 30}, f)
	assert.Equal(t, "bold 30px Helvetica, Verdana, sans-serif", f.String())

	f, err = ParseFont("normal 700 18px/1.2 serif")
	require.NoError(t, err)
	assert.True(t, f.Bold)
	assert.Equal(t, 18.0, f.Size)

	_, err = ParseFont("bold Helvetica")
	assert.Error(t, err)
	_, err = ParseFont("")
	assert.Error(t, err)
}

func TestShadowVisible(t *testing.T) {
	assert.True(t, Shadow{Color: color.NRGBA{A: 1}, OffsetX: 1}.Visible())
	assert.True(t, Shadow{Color: color.NRGBA{A: 1}, Blur: 2}.Visible())
	assert.False(t, Shadow{Color: color.NRGBA{A: 1}}.Visible())
	assert.False(t, Shadow{OffsetX: 3}.Visible())
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arrowHoursColor: blue\nmarksOffset: 40\nisWork: false\n"), 0o644))

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	opts, ignored := Resolve(overrides)
	assert.Empty(t, ignored)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, opts.Arrows.Hours.Color)
	assert.Equal(t, 40.0, opts.Face.MarksOffset)
	assert.False(t, opts.IsWork)

	missing, err := LoadOverrides(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o644))
	_, err = LoadOverrides(path)
	assert.Error(t, err)
}

func TestKeysCoverDefaults(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "arrowHoursColor")
	assert.Contains(t, keys, "digitsFont")
	assert.Contains(t, keys, "isWork")
	assert.Len(t, keys, len(setters))
}

func TestLoadAppliesExtraLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("isWork: true\nmargin: 4\nbogus: 1\n"), 0o644))

	opts, ignored, err := Load(path, map[string]any{"isWork": false})
	require.NoError(t, err)
	assert.False(t, opts.IsWork)
	assert.Equal(t, 4.0, opts.Margin)
	assert.Equal(t, []string{"bogus"}, ignored)

	opts, ignored, err = Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, ignored)
	assert.Equal(t, Default(), opts)

	require.NoError(t, os.WriteFile(path, []byte("key: [unclosed\n"), 0o644))
	_, _, err = Load(path, nil)
	assert.Error(t, err)
}
