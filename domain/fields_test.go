package domain

import "testing"

func TestFieldsClone(t *testing.T) {
	original := Fields{
		"name":   "Acme",
		"nested": map[string]interface{}{"city": "Pune"},
		"tags":   []interface{}{"a", "b"},
	}
	clone := original.Clone()

	clone["name"] = "Other"
	clone["nested"].(map[string]interface{})["city"] = "Mumbai"
	clone["tags"].([]interface{})[0] = "z"

	if original.String("name") != "Acme" {
		t.Error("clone shares top-level values")
	}
	if original["nested"].(map[string]interface{})["city"] != "Pune" {
		t.Error("clone shares nested maps")
	}
	if original["tags"].([]interface{})[0] != "a" {
		t.Error("clone shares slices")
	}

	if Fields(nil).Clone() != nil {
		t.Error("nil document must clone to nil")
	}
}

func TestFieldsMerge(t *testing.T) {
	base := Fields{"name": "Acme", "city": "Pune", "budget": 100}
	patch := Fields{"city": "Mumbai", "remark": nil}

	merged := base.Merge(patch)

	if merged.String("city") != "Mumbai" {
		t.Errorf("patched key not applied, got %v", merged["city"])
	}
	if merged.String("name") != "Acme" || merged["budget"] != 100 {
		t.Error("untouched keys must survive the merge")
	}
	if v, ok := merged["remark"]; !ok || v != nil {
		t.Error("nil patch value must clear the key but keep it present")
	}
	if base.String("city") != "Pune" {
		t.Error("merge must not mutate the receiver")
	}
}

func TestFieldsEncodeDecode(t *testing.T) {
	doc := Fields{"name": "Acme", "budget": float64(100)}
	raw, err := doc.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.String("name") != "Acme" || decoded["budget"] != float64(100) {
		t.Errorf("round trip mismatch: %v", decoded)
	}

	empty, err := DecodeFields(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty input must decode to an empty document, got %v, %v", empty, err)
	}

	raw, err = Fields(nil).Encode()
	if err != nil || string(raw) != "{}" {
		t.Errorf("nil document must encode to {}, got %s, %v", raw, err)
	}
}
