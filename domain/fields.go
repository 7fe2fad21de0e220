package domain

import "encoding/json"

// Fields is an opaque structured document: the payload of a pending action,
// a stored entity record, or an audit snapshot. Values are whatever
// encoding/json produced when the document was decoded.
type Fields map[string]interface{}

// Clone returns a deep copy of the document. Nested maps and slices are
// copied; scalar values are shared.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case Fields:
		return map[string]interface{}(t.Clone())
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	default:
		return v
	}
}

// Merge applies patch onto f as a sparse patch: only keys present in patch
// are written, all other keys are untouched. A nil value in patch clears the
// key's value but keeps the key. The receiver is not modified.
func (f Fields) Merge(patch Fields) Fields {
	out := f.Clone()
	if out == nil {
		out = Fields{}
	}
	for k, v := range patch {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns a string value for key, or "" when absent or not a string.
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// Encode marshals the document to JSON for storage.
func (f Fields) Encode() ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// DecodeFields unmarshals a stored JSON document.
func DecodeFields(data []byte) (Fields, error) {
	if len(data) == 0 {
		return Fields{}, nil
	}
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}
