package middleware

import "testing"

func TestValidateEvidenceFilename(t *testing.T) {
	valid := []string{"a.png", "scan.PDF", "chat.txt", "photo.jpeg", "photo.jpg"}
	for _, name := range valid {
		if err := ValidateEvidenceFilename(name); err != nil {
			t.Errorf("%q: unexpected error %v", name, err)
		}
	}

	invalid := []string{"", "  ", "malware.exe", "archive.zip", "noext"}
	for _, name := range invalid {
		if err := ValidateEvidenceFilename(name); err == nil {
			t.Errorf("%q: expected error", name)
		}
	}
}

func TestValidateFileIDRejectsTraversal(t *testing.T) {
	if err := ValidateFileID("550e8400-e29b-41d4-a716-446655440000.png"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	for _, id := range []string{"", "../secret", "a/b.png", `a\b.png`, "evil..png"} {
		if err := ValidateFileID(id); err == nil {
			t.Errorf("%q: expected error", id)
		}
	}
}

func TestValidateBatchID(t *testing.T) {
	if err := ValidateBatchID("batch_2025-11-02"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	for _, id := range []string{"", "has space", "semi;colon", "x/y"} {
		if err := ValidateBatchID(id); err == nil {
			t.Errorf("%q: expected error", id)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world\x07  "); got != "helloworld" {
		t.Errorf("got %q", got)
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 20},
		{-5, 20},
		{50, 50},
		{500, 100},
	}
	for _, tc := range tests {
		if got := ValidateLimit(tc.in); got != tc.want {
			t.Errorf("ValidateLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
