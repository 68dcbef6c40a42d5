package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodePayload turns raw catalog bytes into the array elements they carry.
// The files in the wild are messy: some are windows-1252 instead of UTF-8,
// and some arrive wrapped in HTML from misconfigured hosts. Invalid UTF-8 is
// re-decoded as windows-1252 up front, and unparseable text gets a salvage
// pass that cuts the outermost JSON array or object out of it.
func decodePayload(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimPrefix(bytes.TrimSpace(data), utf8BOM)

	// encoding/json silently mangles invalid UTF-8, so re-decode legacy
	// windows-1252 files before parsing instead of after.
	if !utf8.Valid(data) {
		if redecoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
			data = redecoded
		}
	}

	if items, err := parseItems(data); err == nil {
		return items, nil
	}

	if salvaged, ok := salvageJSON(data); ok {
		if items, err := parseItems(salvaged); err == nil {
			return items, nil
		}
	}

	return nil, fmt.Errorf("invalid catalog payload")
}

// parseItems accepts either a flat JSON list or an object whose array values
// are concatenated.
func parseItems(data []byte) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	for _, raw := range obj {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err == nil {
			items = append(items, arr...)
		}
	}
	return items, nil
}

// salvageJSON cuts the first '['..last ']' slice (or '{'..'}') out of text
// that has non-JSON noise around it.
func salvageJSON(data []byte) ([]byte, bool) {
	if first, last := bytes.IndexByte(data, '['), bytes.LastIndexByte(data, ']'); first != -1 && last > first {
		return data[first : last+1], true
	}
	if first, last := bytes.IndexByte(data, '{'), bytes.LastIndexByte(data, '}'); first != -1 && last > first {
		return data[first : last+1], true
	}
	return nil, false
}

// asFloat coerces a duck-typed JSON value ("2", 2, 2.5) to a float.
// Anything unparseable comes back as ok=false.
func asFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var f2 float64
		if _, err := fmt.Sscanf(s, "%g", &f2); err == nil {
			return f2, true
		}
	}
	return 0, false
}
