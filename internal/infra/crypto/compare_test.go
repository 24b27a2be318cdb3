package crypto

import "testing"

func TestSecureCompare(t *testing.T) {
	cases := []struct {
		name       string
		supplied   string
		configured string
		want       bool
	}{
		{"equal", "hunter2", "hunter2", true},
		{"different same length", "hunter3", "hunter2", false},
		{"supplied shorter", "hunt", "hunter2", false},
		{"supplied longer", "hunter2hunter2", "hunter2", false},
		{"shared prefix", "hunter2", "hunter22", false},
		{"both empty", "", "", true},
		{"empty supplied", "", "hunter2", false},
		{"empty configured", "hunter2", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SecureCompare(tc.supplied, tc.configured); got != tc.want {
				t.Fatalf("SecureCompare(%q, %q) = %v, want %v", tc.supplied, tc.configured, got, tc.want)
			}
		})
	}
}
