package parse

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Result
	}{
		{
			name: "clean json",
			text: `{"caption":"A cat","hashtags":["cats","cute"]}`,
			want: Result{Caption: "A cat", Hashtags: []string{"#cats", "#cute"}},
		},
		{
			name: "fenced json",
			text: "```json\n{\"caption\":\"A cat\",\"hashtags\":[\"#cats\"]}\n```",
			want: Result{Caption: "A cat", Hashtags: []string{"#cats"}},
		},
		{
			name: "generic fence",
			text: "```\n{\"caption\":\"A cat\",\"hashtags\":[\"cats\"]}\n```",
			want: Result{Caption: "A cat", Hashtags: []string{"#cats"}},
		},
		{
			name: "leading prose",
			text: `Sure! {"caption":"x","hashtags":["a"]}`,
			want: Result{Caption: "x", Hashtags: []string{"#a"}},
		},
		{
			name: "prose on both sides",
			text: "Here you go:\n{\"caption\":\"x\",\"hashtags\":[\"a\"]}\nEnjoy!",
			want: Result{Caption: "x", Hashtags: []string{"#a"}},
		},
		{
			name: "surrounding whitespace",
			text: "  \n{\"caption\":\"x\",\"hashtags\":[]}\n  ",
			want: Result{Caption: "x", Hashtags: []string{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := Reply(tt.text)
			if err != nil {
				t.Fatalf("Reply(%q) returned error: %v", tt.text, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reply(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestReplyNotJSON(t *testing.T) {
	text := "I cannot help with that."
	_, cleaned, err := Reply(text)
	if err == nil {
		t.Fatal("Reply should fail on a reply with no JSON")
	}
	if errors.Is(err, ErrShape) {
		t.Errorf("error should not be ErrShape, got %v", err)
	}
	if cleaned != text {
		t.Errorf("cleaned text = %q, want %q", cleaned, text)
	}
}

func TestReplyShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing hashtags", `{"caption":"x"}`},
		{"missing caption", `{"hashtags":["a"]}`},
		{"top-level array", `["caption","hashtags"]`},
		{"top-level scalar", `"caption"`},
		{"hashtags not a list", `{"caption":"x","hashtags":"a"}`},
		{"caption not a string", `{"caption":1,"hashtags":["a"]}`},
		{"non-string hashtag", `{"caption":"x","hashtags":[1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Reply(tt.text)
			if !errors.Is(err, ErrShape) {
				t.Errorf("Reply(%q) error = %v, want ErrShape", tt.text, err)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"  {}  ", "{}"},
		{"{}", "{}"},
	}
	for _, tt := range tests {
		if got := StripFences(tt.text); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeHashtags(t *testing.T) {
	in := []string{"cats", "#cute", "", "with space"}
	want := []string{"#cats", "#cute", "#", "#with space"}
	got := NormalizeHashtags(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeHashtags(%v) = %v, want %v", in, got, want)
	}
	// Idempotent: a second pass changes nothing.
	again := NormalizeHashtags(got)
	if !reflect.DeepEqual(again, got) {
		t.Errorf("second pass = %v, want %v", again, got)
	}
	for _, tag := range got {
		if !strings.HasPrefix(tag, "#") {
			t.Errorf("tag %q does not start with #", tag)
		}
	}
}
