package codec

import (
	"net/url"
	"sort"
	"strings"
)

// FormURLEncode renders m as an application/x-www-form-urlencoded body. When
// preserveOrder is false, keys are sorted for deterministic output (tests,
// logging); order is otherwise irrelevant to any adapter's wire contract
// since form fields are matched by name, not position.
func FormURLEncode(m map[string]string, preserveOrder []string) string {
	keys := preserveOrder
	if keys == nil {
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	var b strings.Builder
	for i, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String()
}

// FormURLDecode parses an application/x-www-form-urlencoded body into a flat
// map, keeping the last value for any repeated key.
func FormURLDecode(body string) (map[string]string, error) {
	values, err := url.ParseQuery(body)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[len(v)-1]
		}
	}
	return out, nil
}
