package model

import "testing"

func TestParseStudentName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantID    string
		wantStore string
	}{
		{"composite", "1234 (Haro)", "1234", "Haro"},
		{"no store suffix", "1234", "1234", NoStore},
		{"store with spaces", "5678 (San Sebastián)", "5678", "San Sebastián"},
		{"extra whitespace", "  9012  (Getafe)", "9012", "Getafe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStudentName(tt.input)
			if got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
			if got.Store != tt.wantStore {
				t.Errorf("Store = %q, want %q", got.Store, tt.wantStore)
			}
		})
	}
}

func TestDisplayNameRoundTrip(t *testing.T) {
	id := StudentIdentity{ID: "1234", Store: "Haro"}
	name := id.DisplayName()
	if name != "1234 (Haro)" {
		t.Fatalf("DisplayName() = %q", name)
	}
	if back := ParseStudentName(name); back != id {
		t.Errorf("round trip gave %+v, want %+v", back, id)
	}
}

func TestExtractStore(t *testing.T) {
	if got := ExtractStore("1234 (Logroño)"); got != "Logroño" {
		t.Errorf("ExtractStore = %q", got)
	}
	if got := ExtractStore("1234"); got != NoStore {
		t.Errorf("ExtractStore without suffix = %q, want %q", got, NoStore)
	}
}
