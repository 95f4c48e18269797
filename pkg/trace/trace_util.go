package trace

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
)

// SafeAttr renders an arbitrary disclosure-computation value (a path
// count, a requirement id, a path-string slice, ...) as an otel
// attribute.KeyValue without ever panicking on an unexpected type —
// mirroring the defensive span-attribute helper in teacher pkg/trace,
// generalized from its config-struct pointer cases to the plain value
// types DecisionRecord fields actually carry (SPEC_FULL §2 tracing).
func SafeAttr(key string, val any) (kv attribute.KeyValue) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("SafeAttr panic recovered for key %q: %v", key, r)
			kv = fallbackAttr(key, val)
		}
	}()

	switch v := val.(type) {
	case nil:
		return fallbackAttr(key, val)
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case map[string]string:
		if jsonBytes, err := json.Marshal(v); err == nil {
			return attribute.String(key, string(jsonBytes))
		}
		return fallbackAttr(key, val)
	default:
		return fallbackAttr(key, val)
	}
}

func fallbackAttr(key string, val any) attribute.KeyValue {
	typeName := "nil"
	if val != nil {
		typeName = reflect.TypeOf(val).String()
	}
	return attribute.String(fmt.Sprintf("%s.unsupported", key), fmt.Sprintf("unsupported type: %s", typeName))
}
