package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".jsonc":
		return FormatJSONC, true
	}
	return "", false
}

var envPattern = regexp.MustCompile(`\{env:([^}]+)\}`)

// Decode parses data into a plain document made of map[string]any, []any,
// string, bool, int64, float64 and nil. Integral JSON numbers become
// int64. {env:NAME} placeholders in strings are replaced with the
// variable's value.
func Decode(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSONC:
		data = jsonc.ToJSON(data)
		fallthrough
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: unexpected data after document", format)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return plain(raw, "")
}

// plain converts a decoded tree into the plain form. key is the name of the
// field holding v, used to tell extra maps apart from the rest.
func plain(v any, key string) (any, error) {
	switch x := v.(type) {
	case nil, bool, int64, float64:
		return x, nil
	case string:
		return interpolate(x), nil
	case int:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return float64(x), nil
		}
		return int64(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %s", ErrConfigShape, x)
		}
		return f, nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			p, err := plain(item, "")
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			p, err := plain(item, k)
			if err != nil {
				return nil, err
			}
			out[k] = p
		}
		return out, nil
	case map[any]any:
		for k := range x {
			if _, ok := k.(string); ok {
				continue
			}
			if key == "extra" {
				return nil, &descriptor.Error{Kind: descriptor.ErrExtraKeyNotString, Subject: "extra", Detail: fmt.Sprintf("key %v (%T)", k, k)}
			}
			return nil, fmt.Errorf("%w: non-string key %v", ErrConfigShape, k)
		}
		return nil, fmt.Errorf("%w: unexpected mapping", ErrConfigShape)
	}
	return nil, fmt.Errorf("%w: unsupported value %T", ErrConfigShape, v)
}

func interpolate(s string) string {
	if !strings.Contains(s, "{env:") {
		return s
	}
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}
