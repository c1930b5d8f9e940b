package textutil

import "testing"

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dexter", "Dexter"},
		{"", ""},
		{" DoctorWho_2005 ", "DoctorWho_2005"},
		{"a/b\\c", "a_b_c"},
		{"C:evil", "C_evil"},
		{"..", "__"},
		{"nul\x00byte", "nul_byte"},
	}
	for _, tt := range tests {
		if got := SanitizeSegment(tt.in); got != tt.want {
			t.Fatalf("SanitizeSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
