package wizard

import "encoding/json"

// Diff returns the fields whose serialized value differs from the
// seeded snapshot. Nested records and repeated groups are compared
// wholesale, so a change to one date inside one entry includes the
// whole section in the payload.
func Diff(original, current Fields) Fields {
	changed := Fields{}
	for key, value := range current {
		if !sameJSON(original[key], value) {
			changed[key] = value
		}
	}
	return changed
}

func sameJSON(a, b any) bool {
	ra, errA := json.Marshal(a)
	rb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ra) == string(rb)
}

func cloneFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneEntry(entry Entry) Entry {
	out := make(Entry, len(entry))
	for k, v := range entry {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Fields:
		return cloneFields(val)
	case Entry:
		return cloneEntry(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []Entry:
		out := make([]Entry, len(val))
		for i, item := range val {
			out[i] = cloneEntry(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
