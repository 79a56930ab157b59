// Package ifdo adapts incoming iFDO payloads into the write inputs the
// catalog models expect. iFDO fields use kebab-case keys and tolerate a lot
// of sloppiness (explicit nulls, "null" strings, numbers where strings are
// expected); everything is normalized here before validation runs.
package ifdo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/subseadata/ifdocatalog/models"
)

// AdaptError reports an iFDO payload that cannot be adapted safely. The
// message names the offending field path.
type AdaptError struct {
	msg string
}

func (e *AdaptError) Error() string { return e.msg }

func adaptErrorf(format string, args ...any) *AdaptError {
	return &AdaptError{msg: fmt.Sprintf(format, args...)}
}

// isBlank treats nil, empty/whitespace strings and the literal string
// "null" as absent.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		t := strings.TrimSpace(s)
		return t == "" || t == "null"
	}
	return false
}

func requireString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", adaptErrorf("%s must be a string", path)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", adaptErrorf("%s is required", path)
	}
	return s, nil
}

// maybeString coerces scalars to a trimmed string, nil when blank.
func maybeString(v any) *string {
	if isBlank(v) {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
		if s == "" {
			return nil
		}
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	return &s
}

func maybeFloat(v any) (*float64, error) {
	if isBlank(v) {
		return nil, nil
	}
	switch t := v.(type) {
	case float64:
		return &t, nil
	case int:
		f := float64(t)
		return &f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, adaptErrorf("Expected a float-like value, got %v", v)
		}
		return &f, nil
	}
	return nil, adaptErrorf("Expected a float-like value, got %v", v)
}

func maybeInt(v any) (*int, error) {
	if isBlank(v) {
		return nil, nil
	}
	switch t := v.(type) {
	case float64:
		n := int(t)
		return &n, nil
	case int:
		return &t, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, adaptErrorf("Expected an int-like value, got %v", v)
		}
		return &n, nil
	}
	return nil, adaptErrorf("Expected an int-like value, got %v", v)
}

func maybeFloatList(v any) (models.FloatList, error) {
	if isBlank(v) {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, adaptErrorf("Expected a list, got %T", v)
	}
	out := make(models.FloatList, 0, len(raw))
	for _, item := range raw {
		f, err := maybeFloat(item)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, adaptErrorf("Expected a float-like value, got %v", item)
		}
		out = append(out, *f)
	}
	return out, nil
}

func maybeDict(v any) (models.JSONMap, error) {
	if isBlank(v) {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, adaptErrorf("Expected an object, got %T", v)
	}
	return models.JSONMap(m), nil
}

// datetimeLayouts are tried in order before the EXIF fallback. Parsed
// values are normalized to UTC; layouts without a zone are taken as UTC.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const exifLayout = "2006:01:02 15:04:05-0700"

func maybeDatetime(v any) (*time.Time, error) {
	if isBlank(v) {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, adaptErrorf("Expected datetime-like value, got %T", v)
	}
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	if t, err := time.Parse(exifLayout, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, adaptErrorf("Invalid datetime: %q", s)
}

// namedRef normalizes a value that may be a bare string, an object with
// name/uri, or absent, into a NamedRefInput or nil.
func namedRef(v any, path string) (*models.NamedRefInput, error) {
	if isBlank(v) {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		name := strings.TrimSpace(t)
		if name == "" {
			return nil, nil
		}
		return &models.NamedRefInput{Name: name}, nil
	case map[string]any:
		name, err := requireString(t["name"], path+".name")
		if err != nil {
			return nil, err
		}
		out := &models.NamedRefInput{Name: name}
		if uri := maybeString(t["uri"]); uri != nil {
			out.URI = uri
		}
		return out, nil
	}
	return nil, adaptErrorf("%s must be a string or object", path)
}

// creatorList normalizes a list of creator entries. Items may be bare
// strings or name/uri objects; every item must resolve to a name.
func creatorList(v any, path string) ([]models.NamedRefInput, error) {
	if isBlank(v) {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, adaptErrorf("%s must be a list", path)
	}
	out := make([]models.NamedRefInput, 0, len(raw))
	for idx, item := range raw {
		p := fmt.Sprintf("%s[%d]", path, idx)
		ref, err := namedRef(item, p)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, adaptErrorf("%s.name is required", p)
		}
		out = append(out, *ref)
	}
	return out, nil
}

// relatedMaterials normalizes the image-set-related-material list. String
// items become title-only entries; object items require a name, which maps
// to the title, with uri and relation passed through.
func relatedMaterials(v any, path string) ([]models.RelatedMaterialInput, error) {
	if isBlank(v) {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, adaptErrorf("%s must be a list", path)
	}
	out := make([]models.RelatedMaterialInput, 0, len(raw))
	for idx, item := range raw {
		p := fmt.Sprintf("%s[%d]", path, idx)
		switch t := item.(type) {
		case string:
			title, err := requireString(t, p)
			if err != nil {
				return nil, err
			}
			out = append(out, models.RelatedMaterialInput{Title: title})
		case map[string]any:
			if t["name"] == nil {
				return nil, adaptErrorf("%s.name is required", p)
			}
			title, err := requireString(t["name"], p+".name")
			if err != nil {
				return nil, err
			}
			entry := models.RelatedMaterialInput{Title: title}
			entry.URI = maybeString(t["uri"])
			entry.Relation = maybeString(t["relation"])
			out = append(out, entry)
		default:
			return nil, adaptErrorf("%s must be an object or string", p)
		}
	}
	return out, nil
}
