package sdkruntime

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// EncodeForm renders a member->value mapping as a form-urlencoded
// body, the default payload protocol's wire format for requestBody()
// (spec.md §4.5). Keys are sorted for deterministic output.
func EncodeForm(fields map[string]string) *strings.Reader {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := url.Values{}
	for _, k := range keys {
		values.Set(k, fields[k])
	}
	return strings.NewReader(values.Encode())
}

// FormatValue renders a typed field value as the wire string used in
// headers, query parameters, and form-urlencoded body entries
// (spec.md §4.5's request-bucket rules). nil and nil pointers render
// as "", which the caller treats as "omit this member". Any other type
// is rendered with %v, so an empty slice or map renders as "[]" or
// "map[]", not "".
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case bool:
		return fmt.Sprintf("%t", t)
	case *bool:
		if t == nil {
			return ""
		}
		return fmt.Sprintf("%t", *t)
	case int:
		return fmt.Sprintf("%d", t)
	case *int:
		if t == nil {
			return ""
		}
		return fmt.Sprintf("%d", *t)
	case Timestamp:
		return FormatTimestamp(t)
	case *Timestamp:
		if t == nil {
			return ""
		}
		return FormatTimestamp(*t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
