package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Result is the only shape the service returns to callers.
type Result struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// ErrShape marks a reply that parsed as JSON but does not carry the
// required fields. Unlike a parse error, the raw text is not re-exposed
// to the client for these.
var ErrShape = errors.New("invalid response format from model")

type strategy func(string) (Result, error)

// Reply strips formatting fences from a model reply and runs the cleaned
// text through each parsing strategy in order, returning the first success.
// The cleaned text is returned either way so failures can surface it.
func Reply(text string) (Result, string, error) {
	cleaned := StripFences(text)
	var firstErr error
	for _, s := range []strategy{parseStrict, parseExtracted} {
		result, err := s(cleaned)
		if err == nil {
			return result, cleaned, nil
		}
		if errors.Is(err, ErrShape) {
			return Result{}, cleaned, err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return Result{}, cleaned, firstErr
}

// StripFences removes a leading markdown code fence and any trailing
// backtick run.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	return strings.TrimSpace(strings.TrimRight(text, "`"))
}

func parseStrict(text string) (Result, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return Result{}, fmt.Errorf("parsing model response: %w", err)
	}
	return validateShape(value)
}

// parseExtracted recovers JSON wrapped in prose by taking the substring
// from the first '{' to the last '}'. The greedy span can misfire when
// prose after the object contains a brace; that matches the behavior the
// service has always had and is deliberately left alone.
func parseExtracted(text string) (Result, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return Result{}, errors.New("no JSON object found in model response")
	}
	return parseStrict(text[start : end+1])
}

func validateShape(value any) (Result, error) {
	object, ok := value.(map[string]any)
	if !ok {
		return Result{}, ErrShape
	}
	caption, ok := object["caption"].(string)
	if !ok {
		return Result{}, ErrShape
	}
	entries, ok := object["hashtags"].([]any)
	if !ok {
		return Result{}, ErrShape
	}
	hashtags := make([]string, 0, len(entries))
	for _, entry := range entries {
		tag, ok := entry.(string)
		if !ok {
			return Result{}, ErrShape
		}
		hashtags = append(hashtags, tag)
	}
	return Result{Caption: caption, Hashtags: NormalizeHashtags(hashtags)}, nil
}

// NormalizeHashtags prefixes each tag with '#' unless one is already
// there. No dedup, no casing, no length limits; idempotent.
func NormalizeHashtags(tags []string) []string {
	return lo.Map(tags, func(tag string, _ int) string {
		return lo.Ternary(strings.HasPrefix(tag, "#"), tag, "#"+tag)
	})
}
