package store

import "testing"

func TestVersionName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare id", "sheets-sa-key", "projects/p1/secrets/sheets-sa-key/versions/latest"},
		{"secret resource", "projects/p2/secrets/key", "projects/p2/secrets/key/versions/latest"},
		{"version resource", "projects/p2/secrets/key/versions/3", "projects/p2/secrets/key/versions/3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionName("p1", tt.in); got != tt.want {
				t.Fatalf("versionName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
