package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// AnalyzeStrengthInput holds the password to analyze.
type AnalyzeStrengthInput struct {
	Password string `json:"password"`
}

// AnalyzeStrengthOutput is the structured analysis result.
type AnalyzeStrengthOutput struct {
	// Strength is a label such as weak, moderate, or strong.
	Strength string `json:"strength"`
	// Suggestions lists improvements to the password.
	Suggestions []string `json:"suggestions"`
	// Compromised reports whether the password may be compromised.
	Compromised bool `json:"compromised"`
	// Reasoning explains the analysis.
	Reasoning string `json:"reasoning"`
}

var analyzeStrengthSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strength":    {Type: genai.TypeString, Description: "The strength of the password (e.g., weak, moderate, strong)."},
		"suggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Suggestions for improving the password strength."},
		"compromised": {Type: genai.TypeBoolean, Description: "Whether the password may be compromised."},
		"reasoning":   {Type: genai.TypeString, Description: "Explanation of why the password might be considered weak."},
	},
	Required: []string{"strength", "suggestions", "compromised", "reasoning"},
}

// AnalyzeStrength asks the model to grade the given password.
func (t *Tools) AnalyzeStrength(ctx context.Context, in AnalyzeStrengthInput) (*AnalyzeStrengthOutput, error) {
	if in.Password == "" {
		return nil, errors.New("password is required")
	}

	prompt := fmt.Sprintf(`You are an AI-powered password analysis tool. You will analyze the provided password and provide feedback on its strength, suggestions for improvement, whether it may be compromised, and reasoning for your analysis.

Password: %s

Analyze the password and provide the following information:
- strength: The strength of the password (e.g., weak, moderate, strong).
- suggestions: Suggestions for improving the password strength.
- compromised: Whether the password may be compromised.
- reasoning: Explanation of why the password might be considered weak.`, in.Password)

	raw, err := t.llm.Generate(ctx, prompt, analyzeStrengthSchema)
	if err != nil {
		return nil, err
	}
	var out AnalyzeStrengthOutput
	if err := decodeInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
