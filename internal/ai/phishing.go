package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DetectPhishingInput holds the URL and optional login form to classify.
type DetectPhishingInput struct {
	URL           string `json:"url"`
	LoginFormHTML string `json:"loginFormHtml,omitempty"`
}

// DetectPhishingOutput is the structured classification result.
type DetectPhishingOutput struct {
	// IsPhishing reports whether the URL or form is likely a phishing
	// attempt.
	IsPhishing bool `json:"isPhishing"`
	// Reason explains the verdict.
	Reason string `json:"reason"`
}

var detectPhishingSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isPhishing": {Type: genai.TypeBoolean, Description: "Whether the URL or login form is likely a phishing attempt."},
		"reason":     {Type: genai.TypeString, Description: "The reason why the URL or login form is considered phishing."},
	},
	Required: []string{"isPhishing", "reason"},
}

// DetectPhishing asks the model to classify the given URL.
func (t *Tools) DetectPhishing(ctx context.Context, in DetectPhishingInput) (*DetectPhishingOutput, error) {
	if in.URL == "" {
		return nil, errors.New("url is required")
	}

	var b strings.Builder
	b.WriteString(`You are an AI assistant specializing in detecting phishing attempts.
Analyze the provided URL and login form (if available) to determine if it is a phishing attempt.
Provide a detailed reason for your determination.

`)
	fmt.Fprintf(&b, "URL: %s\n", in.URL)
	if in.LoginFormHTML != "" {
		fmt.Fprintf(&b, "Login Form HTML: %s\n", in.LoginFormHTML)
	}
	b.WriteString(`
Consider factors such as:
- Suspicious domain names or URL patterns
- Request for sensitive information
- Presence of security indicators (e.g., HTTPS)
- Visual similarity to legitimate websites
- Unusual requests (e.g. asking for bank details on a non-financial website)

Output your reasoning, and a determination as to whether the URL is a phishing attempt or not. Set the isPhishing field appropriately.`)

	raw, err := t.llm.Generate(ctx, b.String(), detectPhishingSchema)
	if err != nil {
		return nil, err
	}
	var out DetectPhishingOutput
	if err := decodeInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
