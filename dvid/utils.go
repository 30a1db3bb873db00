package dvid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	Kilo = 1 << 10
	Mega = 1 << 20
	Giga = 1 << 30
	Tera = 1 << 40
)

// MarshalJSON encodes v without HTML escaping, so type strings like "<f4" stay
// readable.  A non-empty indent pretty-prints the output.
func MarshalJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseIntList parses a comma-separated list of integers like "100,100,50".
func ParseIntList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	elems := strings.Split(s, ",")
	out := make([]int, len(elems))
	for i, elem := range elems {
		v, err := strconv.Atoi(strings.TrimSpace(elem))
		if err != nil {
			return nil, ArgumentError("bad integer %q in list %q", elem, s)
		}
		out[i] = v
	}
	return out, nil
}

// ParseFloatList parses a comma-separated list of reals like "0.5,0.5,1.2".
func ParseFloatList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	elems := strings.Split(s, ",")
	out := make([]float64, len(elems))
	for i, elem := range elems {
		v, err := strconv.ParseFloat(strings.TrimSpace(elem), 64)
		if err != nil {
			return nil, ArgumentError("bad number %q in list %q", elem, s)
		}
		out[i] = v
	}
	return out, nil
}

// ConvertToAbsolute returns path relative to base if path is not already absolute.
// An empty path stays empty.
func ConvertToAbsolute(base, path string) string {
	if path == "" || filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}
	return filepath.Join(base, path)
}

// WriteTextFile writes s to filename without any trailing newline.
func WriteTextFile(filename, s string) error {
	if err := os.WriteFile(filename, []byte(s), 0644); err != nil {
		return IOError(err, "unable to write %q", filename)
	}
	return nil
}

// intsString formats a slice of ints like "(10,21,837821)".
func intsString(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func floatsString(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
