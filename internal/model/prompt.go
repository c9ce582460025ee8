package model

import "strings"

// BuildPrompt embeds the raw user text into the fixed extraction
// instructions. The schema below is the contract the pipeline parses
// against; changing a key here means changing the normalizer too.
func BuildPrompt(userText string) string {
	var b strings.Builder

	b.WriteString("You are an AI financial tracker.\n")
	b.WriteString("User message: \"" + userText + "\"\n")
	b.WriteString("Extract details and respond with valid JSON only:\n\n")
	b.WriteString("{\n")
	b.WriteString("    \"data\": {\n")
	b.WriteString("        \"type\": \"income\" or \"expense\",\n")
	b.WriteString("        \"amount\": number,\n")
	b.WriteString("        \"category\": short one-word category,\n")
	b.WriteString("        \"description\": short summary\n")
	b.WriteString("    },\n")
	b.WriteString("    \"reply\": \"a friendly confirmation message for the user\"\n")
	b.WriteString("}\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.\n")

	return b.String()
}
