package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeneratePasswordInput holds the user-defined criteria for password
// generation.
type GeneratePasswordInput struct {
	// Length is the desired password length, 8 to 128.
	Length int `json:"length"`
	// UseUppercase includes uppercase characters.
	UseUppercase bool `json:"useUppercase"`
	// UseLowercase includes lowercase characters.
	UseLowercase bool `json:"useLowercase"`
	// UseNumbers includes digits.
	UseNumbers bool `json:"useNumbers"`
	// UseSymbols includes symbols.
	UseSymbols bool `json:"useSymbols"`
	// ComplexityLevel is low, medium, or high; empty defaults to medium.
	ComplexityLevel string `json:"complexityLevel"`
	// AdditionalCriteria is optional free-text preferences.
	AdditionalCriteria string `json:"additionalCriteria,omitempty"`
}

// GeneratePasswordOutput is the structured generation result.
type GeneratePasswordOutput struct {
	// Password is the generated secure password.
	Password string `json:"password"`
	// Reasoning explains why the password is considered strong.
	Reasoning string `json:"reasoning"`
}

var generatePasswordSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"password":  {Type: genai.TypeString, Description: "The generated secure password."},
		"reasoning": {Type: genai.TypeString, Description: "Explanation of why the generated password is considered strong."},
	},
	Required: []string{"password", "reasoning"},
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// GeneratePassword asks the model for a password matching the given
// criteria.
func (t *Tools) GeneratePassword(ctx context.Context, in GeneratePasswordInput) (*GeneratePasswordOutput, error) {
	if in.Length < 8 || in.Length > 128 {
		return nil, fmt.Errorf("length must be between 8 and 128, got %d", in.Length)
	}
	level := in.ComplexityLevel
	switch level {
	case "":
		level = "medium"
	case "low", "medium", "high":
	default:
		return nil, fmt.Errorf("complexity level must be low, medium, or high, got %q", in.ComplexityLevel)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a password generation expert. Generate a strong and secure password based on the following criteria:\n\n")
	fmt.Fprintf(&b, "Desired Length: %d characters\n", in.Length)
	fmt.Fprintf(&b, "Use Uppercase: %s\n", yesNo(in.UseUppercase))
	fmt.Fprintf(&b, "Use Lowercase: %s\n", yesNo(in.UseLowercase))
	fmt.Fprintf(&b, "Use Numbers: %s\n", yesNo(in.UseNumbers))
	fmt.Fprintf(&b, "Use Symbols: %s\n", yesNo(in.UseSymbols))
	fmt.Fprintf(&b, "Complexity Level: %s\n", level)
	if in.AdditionalCriteria != "" {
		fmt.Fprintf(&b, "Additional Criteria: %s\n", in.AdditionalCriteria)
	}
	b.WriteString("\nFirst, generate the password.\n")
	b.WriteString("Then explain why the generated password is strong. ")
	b.WriteString("Make sure to include what character types it contains and the overall randomness of the password. ")
	b.WriteString("Do not include the generated password in your explanation.")

	raw, err := t.llm.Generate(ctx, b.String(), generatePasswordSchema)
	if err != nil {
		return nil, err
	}
	var out GeneratePasswordOutput
	if err := decodeInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
