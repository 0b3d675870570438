package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI sequences one theme uses.
type palette struct {
	fg        string
	time      string
	component string
	file      string
	number    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Everforest Dark (natural forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m", // Soft beige (#d3c6aa)
	time:      "\x1b[38;5;107m", // Mid green (#83c092)
	component: "\x1b[38;5;208m", // Autumn orange (#e69875)
	file:      "\x1b[38;5;109m", // Blue-green (#7fbbb3)
	number:    "\x1b[38;5;108m", // Bright green (#a7c080)
	warn:      "\x1b[38;5;179m", // Soft yellow (#dbbc7f)
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m", // Warm red (#e67e80)
	errBg:     "\x1b[48;5;52m",
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m", // Soft cream (#ebdbb2)
	time:      "\x1b[38;5;108m", // Muted aqua (#8ec07c)
	component: "\x1b[38;5;214m", // Soft yellow (#fabd2f)
	file:      "\x1b[38;5;109m", // Soft blue (#83a598)
	number:    "\x1b[38;5;175m", // Muted purple (#d3869b)
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m", // Warm red (#fb4934)
	errBg:     "\x1b[48;5;88m",
}

var (
	// Current active theme (set from config or UF90_LOG_THEME)
	currentTheme = "everforest"
	// colorEnabled is cleared when stderr is not a terminal
	colorEnabled = true
)

// Themes lists the accepted theme names.
var Themes = []string{"everforest", "gruvbox"}

// SetTheme configures the color scheme for log output. Unknown names are
// ignored.
func SetTheme(theme string) {
	for _, t := range Themes {
		if t == theme {
			currentTheme = theme
			return
		}
	}
}

// SetColor turns ANSI colors in console output on or off.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// paint wraps s in color when colors are enabled.
func paint(color, s string) string {
	if !colorEnabled || color == "" {
		return s
	}
	return color + s + colorReset
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  WARN  sync  Non-ASCII character left in code  src/heat.f90u 3:7 U+2211"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(paint(c.time, ent.Time.Format("15:04:05")))

	// Level: only show for WARN and above; INFO and DEBUG stay quiet
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelString(c, ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(paint(c.component, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(paint(c.fg, ent.Message))

	if s := formatFields(c, fields); s != "" {
		final.AppendString("  ")
		final.AppendString(s)
	}

	final.AppendString("\n")
	return final, nil
}

func levelString(c palette, level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return paint(colorBold+c.warnBg+c.warn, "WARN")
	default:
		return paint(colorBold+c.errBg+c.err, level.CapitalString())
	}
}

// fieldValue renders the value of a zap field.
func fieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", uint64(field.Integer))
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	case zapcore.SkipType:
		return ""
	}

	// Floats, durations and anything else: let a map encoder render it
	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	if v, ok := m.Fields[field.Key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// formatFields prints the common fields in a fixed order as bare values and
// every other field as key=value.
func formatFields(c palette, fields []zapcore.Field) string {
	byKey := make(map[string]string, len(fields))
	for _, f := range fields {
		if v := fieldValue(f); v != "" {
			byKey[f.Key] = v
		}
	}

	var parts []string
	take := func(key string) (string, bool) {
		v, ok := byKey[key]
		delete(byKey, key)
		return v, ok
	}

	if v, ok := take(FieldFile); ok {
		parts = append(parts, paint(c.file, v))
	}
	if v, ok := take(FieldPosition); ok {
		parts = append(parts, v)
	}
	if v, ok := take(FieldSymbol); ok {
		parts = append(parts, v)
	}
	if v, ok := take(FieldCount); ok {
		parts = append(parts, paint(c.number, v)+" files")
	}
	if v, ok := take(FieldDurationMS); ok {
		parts = append(parts, paint(c.number, v)+"ms")
	}

	rest := make([]string, 0, len(byKey))
	for k := range byKey {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		parts = append(parts, k+"="+byKey[k])
	}

	return strings.Join(parts, " ")
}
