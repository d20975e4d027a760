package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// GetSystemPrompt directs the model to write a short investigator-facing brief.
func GetSystemPrompt() string {
	return `You are a fraud intelligence analyst writing for case investigators. Given one analyzed evidence case as JSON, write a short plain-text brief (max 150 words):
- One sentence on the scam category and how confident the classifier is.
- One sentence on the overall risk level and the main contributing factors.
- A short list of the extracted entities worth following up (emails, phones, payment handles, domains).
- Mention OSINT hits only if present.
Do not invent facts that are not in the JSON. No markdown, no headings.`
}

// GetUserPrompt serializes the analysis result for the model.
func GetUserPrompt(result *cases.AnalysisResult) (string, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Write the brief for this case: %s", string(b)), nil
}
