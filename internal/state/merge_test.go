package state_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"atelier/internal/state"
)

func TestMergeMissingServicesKeepsDefaults(t *testing.T) {
	payload := []byte(`{"projects":[],"siteTitle":"CUSTOM"}`)
	var partial state.Partial
	if err := json.Unmarshal(payload, &partial); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !partial.HasProjects() {
		t.Fatal("expected projects to be present")
	}

	merged := partial.MergeOverDefault()
	if merged.SiteTitle != "CUSTOM" {
		t.Fatalf("expected overridden title, got %q", merged.SiteTitle)
	}
	if len(merged.Projects) != 0 {
		t.Fatalf("expected empty projects to override defaults, got %d", len(merged.Projects))
	}
	if !reflect.DeepEqual(merged.Services, state.Default().Services) {
		t.Fatal("expected default services when payload omits them")
	}
	if merged.Tagline != state.Default().Tagline {
		t.Fatal("expected default tagline when payload omits it")
	}
}

func TestHasProjectsFalseWhenAbsentOrNull(t *testing.T) {
	for _, payload := range []string{`{}`, `{"projects":null}`, `{"siteTitle":"x"}`} {
		var partial state.Partial
		if err := json.Unmarshal([]byte(payload), &partial); err != nil {
			t.Fatalf("unmarshal %q: %v", payload, err)
		}
		if partial.HasProjects() {
			t.Fatalf("expected HasProjects false for %q", payload)
		}
	}
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	original := state.Default()
	original.Projects[0].ImageURLs = []string{"data:image/jpeg;base64,AAAA"}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded state.AppState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatal("expected state to survive a JSON round trip")
	}
}
