package extract

import "lead-webhook/internal/leads"

// Identifier keys accepted on sequence entries, in preference order.
var identifierKeys = []string{"data_collection_id", "id"}

func normalizeCollection(raw interface{}) leads.Fields {
	switch v := raw.(type) {
	case []interface{}:
		return fromPairs(v)
	case map[string]interface{}:
		return fromMapping(v)
	default:
		return leads.Fields{}
	}
}

// fromPairs keeps entries carrying both a non-empty identifier and a non-null value.
func fromPairs(items []interface{}) leads.Fields {
	out := leads.Fields{}
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id := identifier(entry)
		if id == "" {
			continue
		}
		value, ok := entry["value"]
		if !ok || value == nil {
			continue
		}
		out[id] = value
	}
	return out
}

func identifier(entry map[string]interface{}) string {
	for _, k := range identifierKeys {
		if s, ok := entry[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// fromMapping unwraps {value: X} entries to X and passes other values through.
func fromMapping(m map[string]interface{}) leads.Fields {
	out := leads.Fields{}
	for k, v := range m {
		if wrapper, ok := v.(map[string]interface{}); ok {
			if inner, has := wrapper["value"]; has {
				if inner != nil {
					out[k] = inner
				}
				continue
			}
		}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}
