package ai

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"
)

// ErrUnavailable is returned by the language-model tools when no
// generation backend is configured.
var ErrUnavailable = errors.New("ai: no generation backend configured")

// unavailableGenerator stands in for the Gemini client when no API key
// is set. Every call fails with ErrUnavailable.
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, string, *genai.Schema) ([]byte, error) {
	return nil, ErrUnavailable
}

// Tools bundles the four adapters behind one dependency for the HTTP
// handlers.
type Tools struct {
	llm     Generator
	scanner BreachScanner
}

// NewTools constructs the adapter set. llm may be nil, in which case the
// language-model tools report ErrUnavailable. scanner may be nil, in
// which case the simulated scanner is used.
func NewTools(llm Generator, scanner BreachScanner) *Tools {
	if llm == nil {
		llm = unavailableGenerator{}
	}
	if scanner == nil {
		scanner = NewSimulatedScanner(time.Now().UnixNano())
	}
	return &Tools{llm: llm, scanner: scanner}
}
