// Package normalizer reads loosely-shaped inbound records through ordered alias
// tables. A field is resolved from the first alias whose value is present; a
// value that is present but cannot be coerced falls back to the default.
package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// Raw is one inbound record as decoded from JSON or collected from a row.
type Raw map[string]any

// Source yields a candidate value from a record.
type Source interface {
	Resolve(r Raw) (any, bool)
}

// Path addresses a key, with dots descending into nested objects ("employee.fullName").
type Path string

func (p Path) Resolve(r Raw) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range strings.Split(string(p), ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, Present(cur)
}

type joined struct {
	sep   string
	parts []Path
}

// Join builds a composite source that concatenates the present parts with sep.
// It resolves only when at least one part is present.
func Join(sep string, parts ...string) Source {
	paths := make([]Path, len(parts))
	for i, p := range parts {
		paths[i] = Path(p)
	}
	return joined{sep: sep, parts: paths}
}

func (j joined) Resolve(r Raw) (any, bool) {
	var out []string
	for _, p := range j.parts {
		v, ok := p.Resolve(r)
		if !ok {
			continue
		}
		if s, ok := ToString(v); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return strings.Join(out, j.sep), true
}

// Aliases is an ordered list of sources for one canonical field.
type Aliases []Source

// Fields is shorthand for an alias table made only of key paths.
func Fields(paths ...string) Aliases {
	a := make(Aliases, len(paths))
	for i, p := range paths {
		a[i] = Path(p)
	}
	return a
}

// Lookup returns the first present candidate.
func (a Aliases) Lookup(r Raw) (any, bool) {
	for _, src := range a {
		if v, ok := src.Resolve(r); ok {
			return v, true
		}
	}
	return nil, false
}

// Present reports whether v counts as supplied: non-nil and not a blank string.
func Present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	}
	return true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Raw:
		return m, true
	}
	return nil, false
}

// String resolves a trimmed string, or def.
func String(r Raw, a Aliases, def string) string {
	v, ok := a.Lookup(r)
	if !ok {
		return def
	}
	s, ok := ToString(v)
	if !ok {
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// Number resolves a finite number, or def.
func Number(r Raw, a Aliases, def float64) float64 {
	v, ok := a.Lookup(r)
	if !ok {
		return def
	}
	n, ok := ToFloat(v)
	if !ok {
		return def
	}
	return n
}

// Int resolves a number rounded to the nearest integer, or def.
func Int(r Raw, a Aliases, def int) int {
	v, ok := a.Lookup(r)
	if !ok {
		return def
	}
	n, ok := ToFloat(v)
	if !ok {
		return def
	}
	return int(math.Round(n))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Time resolves an instant. Timestamps without an offset are read in loc.
// Returns nil when absent or unparseable.
func Time(r Raw, a Aliases, loc *time.Location) *time.Time {
	v, ok := a.Lookup(r)
	if !ok {
		return nil
	}
	t, ok := ToTime(v, loc)
	if !ok {
		return nil
	}
	return &t
}

// Date resolves a civil date. Full timestamps contribute their date in loc.
func Date(r Raw, a Aliases, loc *time.Location) (time.Time, bool) {
	v, ok := a.Lookup(r)
	if !ok {
		return time.Time{}, false
	}
	if s, ok := v.(string); ok {
		if d, err := dateutil.ParseDate(s); err == nil {
			return d, true
		}
	}
	t, ok := ToTime(v, loc)
	if !ok {
		return time.Time{}, false
	}
	return dateutil.CivilIn(t, loc), true
}

// ToString coerces scalars to their string form.
func ToString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return ToString(float64(t))
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Time:
		return t.Format(time.RFC3339), true
	}
	return "", false
}

// ToFloat coerces numbers and numeric strings; non-finite results are rejected.
func ToFloat(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case int16:
		n = float64(t)
	case uint32:
		n = float64(t)
	case uint64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ToTime coerces time values and timestamp strings.
func ToTime(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timestampLayouts {
			if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// List resolves an array of objects. Elements that are not objects become empty records.
func List(r Raw, a Aliases) []Raw {
	v, ok := a.Lookup(r)
	if !ok {
		return nil
	}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []map[string]any:
		items = make([]any, len(t))
		for i, m := range t {
			items[i] = m
		}
	case []Raw:
		return t
	default:
		return nil
	}
	out := make([]Raw, len(items))
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			m = map[string]any{}
		}
		out[i] = Raw(m)
	}
	return out
}
