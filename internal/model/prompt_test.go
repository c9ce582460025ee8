package model

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("I bought snacks for $80")

	if !strings.Contains(prompt, `User message: "I bought snacks for $80"`) {
		t.Errorf("prompt does not embed the user text:\n%s", prompt)
	}

	// The schema keys the normalizer parses against.
	for _, key := range []string{`"data"`, `"type"`, `"amount"`, `"category"`, `"description"`, `"reply"`} {
		if !strings.Contains(prompt, key) {
			t.Errorf("prompt missing schema key %s", key)
		}
	}

	if !strings.Contains(prompt, "valid JSON only") {
		t.Error("prompt missing strict JSON instruction")
	}
}
