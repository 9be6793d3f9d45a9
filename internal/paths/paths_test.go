package paths

import "testing"

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"dashboard:traffic-overview", "dashboard_traffic-overview"},
		{"index-pattern:logs-*", "index-pattern_logs-*"},
		{"no-colon", "no-colon"},
		{"a:b:c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := SanitizeID(tt.id); got != tt.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIncludeFileName(t *testing.T) {
	got := IncludeFileName("lib/dashboard_traffic.json", "panelsJSON")
	want := "lib/dashboard_traffic@panelsJSON.json"
	if got != want {
		t.Errorf("IncludeFileName = %q, want %q", got, want)
	}
}

func TestIsObjectFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"dashboard_traffic.json", true},
		{"dashboard_traffic@panelsJSON.json", false},
		{"lib/sub/search_errors.json", true},
		{"readme.md", false},
		{"lib@weird/search_errors.json", true}, // '@' in directory, not basename
	}
	for _, tt := range tests {
		if got := IsObjectFile(tt.name); got != tt.want {
			t.Errorf("IsObjectFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseIncludeRef(t *testing.T) {
	tests := []struct {
		value    string
		wantName string
		wantOK   bool
	}{
		{"@fields", "fields", true},
		{"@ref-fields", "fields", true},
		{"@panelsJSON", "panelsJSON", true},
		{`{"inline": true}`, "", false},
		{"[1,2,3]", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		name, ok := ParseIncludeRef(tt.value)
		if name != tt.wantName || ok != tt.wantOK {
			t.Errorf("ParseIncludeRef(%q) = (%q, %v), want (%q, %v)",
				tt.value, name, ok, tt.wantName, tt.wantOK)
		}
	}
}
