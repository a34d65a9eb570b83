package model

import (
	"encoding/base64"
	"testing"
)

func TestDefaultManualsCatalog(t *testing.T) {
	manuals := DefaultManuals()
	if len(manuals) != 14 {
		t.Fatalf("catalog has %d manuals, want 14", len(manuals))
	}

	ids := make(map[string]bool, len(manuals))
	for _, m := range manuals {
		if ids[m.ID] {
			t.Errorf("duplicate manual id %q", m.ID)
		}
		ids[m.ID] = true
		if m.Name == "" {
			t.Errorf("manual %q has no name", m.ID)
		}
		if !m.Category.Valid() {
			t.Errorf("manual %q has invalid category %q", m.ID, m.Category)
		}
		if m.MimeType != "text/plain" {
			t.Errorf("manual %q mime type = %q, want text/plain", m.ID, m.MimeType)
		}
		body, err := base64.StdEncoding.DecodeString(m.FileData)
		if err != nil {
			t.Errorf("manual %q body is not valid base64: %v", m.ID, err)
		} else if len(body) == 0 {
			t.Errorf("manual %q has an empty body", m.ID)
		}
	}

	// Every subject block ships at least one manual, anchored by these ids.
	for _, id := range []string{"m_atc_01", "m_ope_01", "m_prod_01", "m_vis_01"} {
		if !ids[id] {
			t.Errorf("catalog missing %q", id)
		}
	}
}

func TestDefaultManualsReturnsFreshCopies(t *testing.T) {
	first := DefaultManuals()
	first[0].Name = "mutated"
	if DefaultManuals()[0].Name == "mutated" {
		t.Error("catalog entries must not share state between calls")
	}
}
