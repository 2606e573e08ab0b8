package ai

import (
	"context"
	"errors"
	"math/rand"
	"sync"
)

// BreachRecord is one dark-web finding for a monitored email.
type BreachRecord struct {
	// BreachDate is the date the breach occurred.
	BreachDate string `json:"breachDate"`
	// Source is where the breach originated.
	Source string `json:"source"`
	// Description summarizes the breach.
	Description string `json:"description"`
}

// MonitorDarkWebInput identifies the email to scan and the key for the
// monitoring service.
type MonitorDarkWebInput struct {
	Email  string `json:"email"`
	APIKey string `json:"apiKey"`
}

// MonitorDarkWebOutput is the structured scan result.
type MonitorDarkWebOutput struct {
	// FoundBreaches reports whether any breaches were found.
	FoundBreaches bool `json:"foundBreaches"`
	// BreachRecords lists the findings, if any.
	BreachRecords []BreachRecord `json:"breachRecords,omitempty"`
}

// BreachScanner checks an email against a dark-web monitoring service.
type BreachScanner interface {
	Scan(ctx context.Context, email, apiKey string) (*MonitorDarkWebOutput, error)
}

// MonitorDarkWeb scans the given email for breaches. The API key is
// required; the scan itself is delegated to the configured scanner.
func (t *Tools) MonitorDarkWeb(ctx context.Context, in MonitorDarkWebInput) (*MonitorDarkWebOutput, error) {
	if in.Email == "" {
		return nil, errors.New("email is required")
	}
	if in.APIKey == "" {
		return nil, errors.New("API key is required")
	}
	return t.scanner.Scan(ctx, in.Email, in.APIKey)
}

// SimulatedScanner stands in for a real dark-web monitoring service: each
// scan has an even chance of reporting a canned breach. No real monitoring
// backend exists for this tool.
type SimulatedScanner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedScanner seeds the simulation. Pass a fixed seed in tests for
// deterministic results.
func NewSimulatedScanner(seed int64) *SimulatedScanner {
	return &SimulatedScanner{rng: rand.New(rand.NewSource(seed))}
}

// Scan flips a coin and fabricates a breach record on heads.
func (s *SimulatedScanner) Scan(_ context.Context, email, _ string) (*MonitorDarkWebOutput, error) {
	s.mu.Lock()
	found := s.rng.Float64() < 0.5
	s.mu.Unlock()

	out := &MonitorDarkWebOutput{FoundBreaches: found}
	if found {
		out.BreachRecords = []BreachRecord{
			{
				BreachDate:  "2023-01-15",
				Source:      "Example Breach",
				Description: "Credentials for " + email + " appeared in a leaked database.",
			},
		}
	}
	return out, nil
}
