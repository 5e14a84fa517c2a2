package messaging

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"whatsapp:+919876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"9876543210", "+919876543210"},
		{"09876543210", "+919876543210"},
		{"whatsapp:+91 98765-43210", "+919876543210"},
		{"  +91 (98765) 43210 ", "+919876543210"},
		{"whatsapp:09876543210", "+919876543210"},
		{"", ""},
		{"whatsapp:", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"whatsapp:+919876543210", "09876543210", "9876543210", "+14155552671"}
	for _, input := range inputs {
		once := NormalizePhone(input)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("NormalizePhone not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizePhoneConvergence(t *testing.T) {
	// Every formatting variant of the same number must map to one key;
	// session identity depends on it.
	variants := []string{
		"whatsapp:+919876543210",
		"+91 98765 43210",
		"919876543210",
		"09876543210",
		"9876543210",
	}
	want := "+919876543210"
	for _, v := range variants {
		if got := NormalizePhone(v); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestSanitizePhone(t *testing.T) {
	if got := sanitizePhone(" +91 (98765) 43-210 "); got != "919876543210" {
		t.Errorf("sanitizePhone = %q", got)
	}
	if got := sanitizePhone(""); got != "" {
		t.Errorf("sanitizePhone(\"\") = %q", got)
	}
}
