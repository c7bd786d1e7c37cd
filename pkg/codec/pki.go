package codec

import (
	"fmt"
	"sort"
	"strings"
)

// PKIString renders value in iyzico's PKI-string grammar:
//   - objects: "key1=val1,key2=val2" (no surrounding brackets at any level
//     except nested objects/arrays, which are wrapped in "[...]")
//   - arrays: "[item1, item2, item3]" (comma-space separated)
//   - scalars: their string form
//
// Map keys are sorted so the resulting string — and therefore any hash
// computed over it — is deterministic regardless of map iteration order.
func PKIString(value map[string]interface{}) string {
	return pkiObjectBody(value)
}

func pkiObjectBody(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(pkiValue(m[k]))
		b.WriteByte(',')
	}
	return strings.TrimSuffix(b.String(), ",")
}

func pkiValue(v interface{}) string {
	switch t := v.(type) {
	case map[string]interface{}:
		return "[" + pkiObjectBody(t) + "]"
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = pkiValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []map[string]interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = pkiValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
