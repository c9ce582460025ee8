// Package extract pulls the first JSON object out of free-form model output.
// Models are asked for strict JSON but routinely wrap it in prose or
// Markdown fences, so the extractor tolerates surrounding text.
package extract

import "encoding/json"

// FirstObject scans text left to right and returns the first balanced
// {...} span parsed as a JSON object. Text before the span, after it, and
// any later objects are ignored. It returns nil when no balanced span
// exists, and nil when the first balanced span is not valid JSON — later
// candidates are not retried.
//
// Known limitation: braces inside string literals are counted like any
// other brace, so a literal "}" in a quoted value closes the span early.
// In practice a malformed candidate means the model ignored the output
// schema, and the whole response is treated as unusable.
func FirstObject(text string) map[string]interface{} {
	depth := 0
	start := -1

	for i, ch := range text {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				var obj map[string]interface{}
				if err := json.Unmarshal([]byte(text[start:i+1]), &obj); err != nil {
					return nil
				}
				return obj
			}
		}
	}
	return nil
}
