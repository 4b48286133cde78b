// Package normalize converts raw feed payloads into canonical records.
//
// The feed reports almost everything as strings: counters arrive as "17",
// booleans as "1"/"0", and missing values as "" or absent keys. Normalizers
// are pure functions from one payload (plus fetch scope) to zero or more
// records; a value that cannot be coerced yields a NormalizationError for
// that record and the batch continues.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// obj is one decoded JSON object from a payload.
type obj map[string]any

func (o obj) str(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	}
	return ""
}

// num parses an integer, tolerating float-typed JSON numbers, empty strings
// and a leading '+' (the feed formats plus/minus as "+2").
func (o obj) num(key string) int {
	switch v := o[key].(type) {
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(v, "+"))
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// numPtr is num but distinguishes absent/empty/zero from a real id.
func (o obj) numPtr(key string) *int {
	s := strings.TrimSpace(o.str(key))
	if s == "" || s == "0" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

func (o obj) f64(key string) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// flag implements the feed's string-boolean convention.
func (o obj) flag(key string) bool {
	switch v := o[key].(type) {
	case string:
		return v == "1"
	case float64:
		return v == 1
	case bool:
		return v
	}
	return false
}

func (o obj) obj(key string) obj {
	if m, ok := o[key].(map[string]any); ok {
		return obj(m)
	}
	return obj{}
}

func (o obj) list(key string) []obj {
	raw, ok := o[key].([]any)
	if !ok {
		return nil
	}
	out := make([]obj, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, obj(m))
		}
	}
	return out
}

// requireID parses a key that must be a positive integer. Zero or garbage
// means the record is unusable.
func (o obj) requireID(entity, key string) (int, error) {
	n := o.num(key)
	if n <= 0 {
		return 0, &NormalizationError{Entity: entity, Field: key, Raw: o.str(key)}
	}
	return n, nil
}

// parseClockTime converts "MM:SS" to seconds.
func parseClockTime(s string) (int, error) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	sec, err := strconv.Atoi(ss)
	if err != nil || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	return m*60 + sec, nil
}

// ratio returns num/den as a float, zero when den is zero. Used to derive
// percentages the feed omits.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
