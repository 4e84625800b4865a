package prompt

import (
	"strings"
	"testing"
)

func TestBuildWithoutGuidance(t *testing.T) {
	p := Build("")
	if strings.Contains(p, "guidance") {
		t.Errorf("prompt without guidance should have no guidance clause: %q", p)
	}
	for _, want := range []string{"max 20 words", "social media", "5 relevant hashtags", `{"caption": "", "hashtags": []}`, "no prose", "no markdown"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt is missing %q: %q", want, p)
		}
	}
}

func TestBuildWithGuidance(t *testing.T) {
	tests := []struct {
		name     string
		guidance string
	}{
		{"plain", "make it sound mysterious"},
		{"embedded quotes", `mention the "golden hour"`},
		{"multi-line", "first line\nsecond line"},
		{"backslash", `use a \ somewhere`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.guidance)
			if !strings.Contains(p, `"`+tt.guidance+`"`) {
				t.Errorf("prompt should quote guidance verbatim: %q", p)
			}
		})
	}
}
