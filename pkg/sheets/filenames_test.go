package sheets

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"สมชาย ใจดี", "สมชาย ใจดี"},
		{"José   Álvarez", "Jose Alvarez"},
		{"  padded\tname \n", "padded name"},
		{`a/b\c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"", ""},
		{"Zoë Çelik", "Zoe Celik"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("CERT_", "สมชาย ใจดี", "pdf"); got != "CERT_สมชาย ใจดี.pdf" {
		t.Errorf("unexpected filename %q", got)
	}
	if got := Filename("", "Ada", "png"); got != "Ada.png" {
		t.Errorf("unexpected filename %q", got)
	}
	if got := Filename("X-", "Ada", "jpeg"); got != "X-Ada.png" {
		t.Errorf("non-pdf formats should use png, got %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	ds := NewDataset([]string{"full_name"}, []Row{IndexedRow{"Ada"}, IndexedRow{""}})

	if got := DisplayName(ds, 0, "full_name"); got != "Ada" {
		t.Errorf("expected Ada, got %q", got)
	}
	if got := DisplayName(ds, 1, "full_name"); got != "row-2" {
		t.Errorf("expected row-2 fallback, got %q", got)
	}
	if got := DisplayName(nil, 4, "full_name"); got != "row-5" {
		t.Errorf("expected row-5 fallback, got %q", got)
	}
}
