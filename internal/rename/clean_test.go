package rename

import (
	"strings"
	"testing"

	"github.com/harmolab/mixprep/internal/model"
)

func TestCleanBaseName(t *testing.T) {
	tests := []struct {
		name          string
		base          string
		policy        model.RenamePolicy
		otherNotation string
		want          string
	}{
		{
			name: "literals removed in order",
			base: "Track (Official Video) [HD]",
			policy: model.RenamePolicy{
				RemoveLiterals: []string{"(Official Video)", "[HD]"},
			},
			want: "Track",
		},
		{
			name: "replacements applied sequentially",
			base: "some_track_name",
			policy: model.RenamePolicy{
				ReplacePairs: []model.ReplacePair{
					{Old: "_", New: " "},
					{Old: "some ", New: ""},
				},
			},
			want: "track name",
		},
		{
			name:          "stale classic key purged whole word",
			base:          "Am Deep House",
			otherNotation: "Am",
			want:          "Deep House",
		},
		{
			name:          "purge is case insensitive",
			base:          "am Deep House",
			otherNotation: "Am",
			want:          "Deep House",
		},
		{
			name:          "partial word survives purge",
			base:          "Amber Deep House",
			otherNotation: "Am",
			want:          "Amber Deep House",
		},
		{
			name:          "stale wheel code purged",
			base:          "8A Deep House",
			otherNotation: "8A",
			want:          "Deep House",
		},
		{
			name: "stale bpm token removed",
			base: "Track 128 BPM mix",
			want: "Track mix",
		},
		{
			name: "bpm token without space removed",
			base: "Track 128bpm",
			want: "Track",
		},
		{
			name: "bpm-like word kept",
			base: "Track bpm style",
			want: "Track bpm style",
		},
		{
			name: "leading hyphens and spaces stripped",
			base: " - - Track",
			want: "Track",
		},
		{
			name: "whitespace runs collapsed",
			base: "Track   with    gaps",
			want: "Track with gaps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanBaseName(tt.base, tt.policy, tt.otherNotation)
			if got != tt.want {
				t.Errorf("CleanBaseName(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	got := Compose("8A", 128, "Deep House")
	want := "8A - 128 BPM - Deep House"
	if got != want {
		t.Errorf("Compose = %q, want %q", got, want)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal name", "normal name"},
		{"name:with:colons", "name-with-colons"},
		{"name<with>brackets", "name-with-brackets"},
		{"name/with\\slashes", "name-with-slashes"},
		{"name|with?wild*cards", "name-with-wild-cards"},
		{`name"quoted"`, "name-quoted-"},
		{"name   with  spaces", "name with spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.ContainsAny(got, `<>:"/\|?*`) {
				t.Errorf("SanitizeName(%q) left invalid characters: %q", tt.input, got)
			}
		})
	}
}

func TestContainsWholeWord(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"C - 130 BPM - track", "130", true},
		{"C - 130 BPM - track", "C", true},
		{"c - 130 bpm - track", "C", true},
		{"1300 things", "130", false},
		{"Amber", "Am", false},
		{"Am session", "Am", true},
	}

	for _, tt := range tests {
		if got := containsWholeWord(tt.name, tt.token); got != tt.want {
			t.Errorf("containsWholeWord(%q, %q) = %v, want %v", tt.name, tt.token, got, tt.want)
		}
	}
}
