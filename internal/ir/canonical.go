package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for hashing.
// This is the ONLY serialization used for page fingerprints.
//
// Key differences from standard json.Marshal:
// 1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
// 2. No HTML escaping (< > & are NOT escaped)
// 3. Strings are NFC normalized
// 4. No floats (returns error)
// 5. No null (returns error)
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString produces a canonical JSON string with NFC normalization.
// Only control characters, backslash and quote are escaped.
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes emitted by
// encoding/json back into literal characters, as RFC 8785 requires.
// Escapes are consumed pairwise, so an escaped backslash followed by
// "u2028" is copied through untouched.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareKeysRFC8785 orders keys by their UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	return slices.Compare(ua, ub)
}

// canonicalPoint and friends convert the instruction model into the generic
// map/array form accepted by MarshalCanonical.
func canonicalPoint(p Point) map[string]any {
	return map[string]any{"x": int64(p.X), "y": int64(p.Y)}
}

func canonicalInstruction(in DrawInstruction) (map[string]any, error) {
	switch v := in.(type) {
	case TextRun:
		return map[string]any{
			"kind":    string(KindText),
			"field":   v.Field,
			"origin":  canonicalPoint(v.Origin),
			"weight":  string(v.Weight),
			"size":    int64(v.Size),
			"content": v.Content,
		}, nil
	case LineStroke:
		return map[string]any{
			"kind":  string(KindLine),
			"field": v.Field,
			"from":  canonicalPoint(v.From),
			"to":    canonicalPoint(v.To),
			"width": int64(v.Width),
		}, nil
	case ClosedPolygon:
		vertices := make([]any, len(v.Vertices))
		for i, p := range v.Vertices {
			vertices[i] = canonicalPoint(p)
		}
		return map[string]any{
			"kind":     string(KindPolygon),
			"field":    v.Field,
			"vertices": vertices,
			"width":    int64(v.Width),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported draw instruction %T", in)
	}
}

// MarshalPage returns the canonical JSON form of a page: its profile and its
// ordered instructions.
func MarshalPage(profile PageProfile, instrs []DrawInstruction) ([]byte, error) {
	list := make([]any, len(instrs))
	for i, in := range instrs {
		m, err := canonicalInstruction(in)
		if err != nil {
			return nil, fmt.Errorf("instruction[%d]: %w", i, err)
		}
		list[i] = m
	}
	return MarshalCanonical(map[string]any{
		"ir_version": IRVersion,
		"profile": map[string]any{
			"name":   profile.Name,
			"title":  profile.Title,
			"width":  int64(profile.Width),
			"height": int64(profile.Height),
		},
		"instructions": list,
	})
}
