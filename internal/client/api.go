// Package client implements the HTTP client used by the interactive CLI.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/securepass/securepass/internal/ai"
	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
)

// API is a thin wrapper over the SecurePass HTTP API that carries the
// session token between calls.
type API struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

// New constructs an API client for the given base URL.
func New(baseURL string) *API {
	return &API{HTTP: &http.Client{}, BaseURL: baseURL}
}

func (a *API) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var fail struct {
			Reason string `json:"reason"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &fail) == nil && fail.Reason != "" {
			return fmt.Errorf("%s", fail.Reason)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// LoginResult is the session data returned by a successful login.
type LoginResult struct {
	Token      string      `json:"token"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	ForceReset bool        `json:"forceReset"`
}

// Login authenticates and stores the session token for later calls.
func (a *API) Login(email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res); err != nil {
		return nil, err
	}
	a.Token = res.Token
	return &res, nil
}

// Logout ends the session.
func (a *API) Logout() error {
	err := a.do(http.MethodPost, "/api/auth/logout", nil, nil)
	a.Token = ""
	return err
}

// ListCredentials returns the credentials matching the optional query.
func (a *API) ListCredentials(query string) ([]models.Credential, error) {
	path := "/api/credentials"
	if query != "" {
		path += "?q=" + query
	}
	var out []models.Credential
	err := a.do(http.MethodGet, path, nil, &out)
	return out, err
}

// AddCredential stores a new credential.
func (a *API) AddCredential(c models.Credential) (models.Credential, error) {
	var out models.Credential
	err := a.do(http.MethodPost, "/api/credentials", c, &out)
	return out, err
}

// DeleteCredential removes a credential by id.
func (a *API) DeleteCredential(id string) error {
	return a.do(http.MethodDelete, "/api/credentials/"+id, nil, nil)
}

// ListNotes returns the notes matching the optional query.
func (a *API) ListNotes(query string) ([]models.Note, error) {
	path := "/api/notes"
	if query != "" {
		path += "?q=" + query
	}
	var out []models.Note
	err := a.do(http.MethodGet, path, nil, &out)
	return out, err
}

// AddNote stores a new note.
func (a *API) AddNote(n models.Note) (models.Note, error) {
	var out models.Note
	err := a.do(http.MethodPost, "/api/notes", n, &out)
	return out, err
}

// Share shares the given items with the recipients.
func (a *API) Share(recipients, itemIDs []string, itemType models.ItemType) (int, []service.ShareFailure, error) {
	var out struct {
		Shared   int                    `json:"shared"`
		Failures []service.ShareFailure `json:"failures"`
	}
	err := a.do(http.MethodPost, "/api/shares", map[string]any{
		"recipients": recipients,
		"itemIds":    itemIDs,
		"itemType":   itemType,
	}, &out)
	return out.Shared, out.Failures, err
}

// Inbox returns the pending shares addressed to the logged-in user.
func (a *API) Inbox() ([]service.SharedItemView, error) {
	var out []service.SharedItemView
	err := a.do(http.MethodGet, "/api/shares/inbox", nil, &out)
	return out, err
}

// Outbox returns the shares sent by the logged-in user.
func (a *API) Outbox() ([]service.SharedItemView, error) {
	var out []service.SharedItemView
	err := a.do(http.MethodGet, "/api/shares/outbox", nil, &out)
	return out, err
}

// Accept accepts a pending share, copying the item into the user's vault.
func (a *API) Accept(id string) (models.SharedItem, error) {
	var out models.SharedItem
	err := a.do(http.MethodPost, "/api/shares/"+id+"/accept", nil, &out)
	return out, err
}

// Decline removes a share record.
func (a *API) Decline(id string) error {
	return a.do(http.MethodDelete, "/api/shares/"+id, nil, nil)
}

// Export downloads the vault as a JSON document.
func (a *API) Export() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, a.BaseURL+"/api/vault/export", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Token)
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Import uploads a vault document, replacing the server's stores.
func (a *API) Import(data []byte) error {
	req, err := http.NewRequest(http.MethodPost, a.BaseURL+"/api/vault/import", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Token)
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var fail struct {
			Reason string `json:"reason"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &fail) == nil && fail.Reason != "" {
			return fmt.Errorf("%s", fail.Reason)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

// GeneratePassword runs the password generation tool.
func (a *API) GeneratePassword(in ai.GeneratePasswordInput) (*ai.GeneratePasswordOutput, error) {
	return callTool[ai.GeneratePasswordOutput](a, "/api/tools/generate-password", in)
}

// AnalyzePassword runs the strength analysis tool.
func (a *API) AnalyzePassword(in ai.AnalyzeStrengthInput) (*ai.AnalyzeStrengthOutput, error) {
	return callTool[ai.AnalyzeStrengthOutput](a, "/api/tools/analyze-password", in)
}

// DetectPhishing runs the phishing classification tool.
func (a *API) DetectPhishing(in ai.DetectPhishingInput) (*ai.DetectPhishingOutput, error) {
	return callTool[ai.DetectPhishingOutput](a, "/api/tools/detect-phishing", in)
}

// DarkWeb runs the dark-web monitoring tool.
func (a *API) DarkWeb(in ai.MonitorDarkWebInput) (*ai.MonitorDarkWebOutput, error) {
	return callTool[ai.MonitorDarkWebOutput](a, "/api/tools/dark-web", in)
}

func callTool[T any](a *API, path string, in any) (*T, error) {
	var res struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Reason  string          `json:"reason"`
	}
	if err := a.do(http.MethodPost, path, in, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("%s", res.Reason)
	}
	var out T
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
