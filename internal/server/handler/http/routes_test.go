package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/securepass/securepass/internal/ai"
	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
	"github.com/securepass/securepass/internal/store"
)

// stubGenerator satisfies ai.Generator with a canned response.
type stubGenerator struct {
	response string
}

func (s *stubGenerator) Generate(context.Context, string, *genai.Schema) ([]byte, error) {
	return []byte(s.response), nil
}

type apiFixture struct {
	router      http.Handler
	users       *store.UserStore
	credentials *store.CredentialStore
	notes       *store.NoteStore
	shares      *service.ShareService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	credentials := store.NewCredentialStore()
	notes := store.NewNoteStore()
	licenses := store.NewLicenseStore()
	users := store.NewUserStore()
	search := store.NewSearchState()

	directory := service.NewDirectoryService(users, nil, zap.NewNop())
	auth := service.NewAuthService(directory)
	shares := service.NewShareService(credentials, notes, directory)
	vault := service.NewVaultService(credentials, notes, licenses)
	tools := ai.NewTools(
		&stubGenerator{response: `{"password": "xK9#mP2$vL5!", "reasoning": "mixed classes"}`},
		ai.NewSimulatedScanner(1),
	)

	hub := NewEventHub()

	router := NewRouter(
		&AuthHandler{Auth: auth, Directory: directory},
		&VaultHandler{Credentials: credentials, Notes: notes, Licenses: licenses, Vault: vault, Search: search},
		&ShareHandler{Shares: shares, Credentials: credentials, Notes: notes},
		&AdminHandler{Directory: directory},
		&ToolsHandler{Tools: tools},
		hub,
		auth,
		zap.NewNop(),
	)

	return &apiFixture{
		router:      router,
		users:       users,
		credentials: credentials,
		notes:       notes,
		shares:      shares,
	}
}

// do performs one request against the router. A non-nil body is sent as
// JSON; token, when set, goes into the Authorization header.
func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v (body: %s)", err, rr.Body.String())
	}
	return out
}

func (f *apiFixture) register(t *testing.T, name, email, password string) {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":             name,
		"email":            email,
		"password":         password,
		"securityQuestion": "Favorite color?",
		"securityAnswer":   "blue",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, rr.Code, rr.Body.String())
	}
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", email, rr.Code, rr.Body.String())
	}
	res := decodeBody[map[string]any](t, rr)
	token, _ := res["token"].(string)
	if token == "" {
		t.Fatalf("login %s returned no token", email)
	}
	return token
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(t, http.MethodGet, "/api/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusOK)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/api/credentials", "/api/notes", "/api/shares/inbox", "/api/users"} {
		rr := f.do(t, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d; want %d", path, rr.Code, http.StatusUnauthorized)
		}
	}
}

func TestLogin_Failures(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d; want %d", rr.Code, http.StatusUnauthorized)
	}

	u, _ := f.users.FindByEmail("alice@example.com")
	f.users.ToggleActive(u.ID)

	rr = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret-pass",
	})
	if rr.Code != http.StatusForbidden {
		t.Errorf("inactive account: status = %d; want %d", rr.Code, http.StatusForbidden)
	}
}

func TestLogin_ForceResetFlag(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", models.DefaultResetPassword)

	rr := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": models.DefaultResetPassword,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	res := decodeBody[map[string]any](t, rr)
	if res["forceReset"] != true {
		t.Error("forceReset = false for the administrative default password; want true")
	}
}

func TestCredentialCRUD(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{
		Title:    "Github",
		Username: "alice",
		Password: "p",
		Tags:     []string{"dev"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	created := decodeBody[models.Credential](t, rr)
	if created.ID == "" {
		t.Fatal("created credential has no id")
	}

	rr = f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{Title: "incomplete"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("create invalid: status = %d; want %d", rr.Code, http.StatusBadRequest)
	}

	rr = f.do(t, http.MethodGet, "/api/credentials/"+created.ID, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rr.Code)
	}

	rr = f.do(t, http.MethodPut, "/api/credentials/"+created.ID, token, models.Credential{
		Title:    "Github Work",
		Username: "alice",
		Password: "p2",
	})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("update: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	updated, _ := f.credentials.Find(created.ID)
	if updated.Title != "Github Work" {
		t.Errorf("Title after update = %q; want %q", updated.Title, "Github Work")
	}

	rr = f.do(t, http.MethodDelete, "/api/credentials/"+created.ID, token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rr.Code)
	}
	if f.credentials.Len() != 0 {
		t.Errorf("credential count = %d after delete; want 0", f.credentials.Len())
	}
}

func TestCredentialBatchDelete(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	var ids []string
	for i := 0; i < 3; i++ {
		rr := f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{
			Title:    fmt.Sprintf("entry-%d", i),
			Username: "u",
			Password: "p",
		})
		ids = append(ids, decodeBody[models.Credential](t, rr).ID)
	}

	rr := f.do(t, http.MethodDelete, "/api/credentials", token, map[string][]string{"ids": ids[:2]})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("batch delete: status = %d", rr.Code)
	}
	if f.credentials.Len() != 1 {
		t.Errorf("credential count = %d; want 1", f.credentials.Len())
	}
}

func TestSearchState_SharedAcrossLists(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{Title: "Github", Username: "u", Password: "p"})
	f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{Title: "AWS", Username: "u", Password: "p"})
	f.do(t, http.MethodPost, "/api/notes", token, models.Note{Title: "Github recovery codes", Content: "x"})

	rr := f.do(t, http.MethodPost, "/api/search", token, map[string]string{"query": "github"})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("set search: status = %d", rr.Code)
	}

	creds := decodeBody[[]models.Credential](t, f.do(t, http.MethodGet, "/api/credentials", token, nil))
	if len(creds) != 1 || creds[0].Title != "Github" {
		t.Errorf("filtered credentials = %+v; want only Github", creds)
	}

	// The same query applies to the note list without being restated.
	notes := decodeBody[[]models.Note](t, f.do(t, http.MethodGet, "/api/notes", token, nil))
	if len(notes) != 1 {
		t.Errorf("filtered notes = %+v; want the matching note", notes)
	}

	// An explicit ?q= overrides and replaces the shared state.
	creds = decodeBody[[]models.Credential](t, f.do(t, http.MethodGet, "/api/credentials?q=aws", token, nil))
	if len(creds) != 1 || creds[0].Title != "AWS" {
		t.Errorf("?q=aws credentials = %+v; want only AWS", creds)
	}

	rr = f.do(t, http.MethodDelete, "/api/search", token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("clear search: status = %d", rr.Code)
	}
	creds = decodeBody[[]models.Credential](t, f.do(t, http.MethodGet, "/api/credentials", token, nil))
	if len(creds) != 2 {
		t.Errorf("credentials after clear = %d; want 2", len(creds))
	}
}

func TestShareAcceptFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	f.register(t, "Bob", "bob@example.com", "secret-pass")
	alice := f.login(t, "alice@example.com", "secret-pass")
	bob := f.login(t, "bob@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/credentials", alice, models.Credential{
		Title:    "Github",
		Username: "alice",
		Password: "p",
	})
	created := decodeBody[models.Credential](t, rr)

	rr = f.do(t, http.MethodPost, "/api/shares", alice, map[string]any{
		"recipients": []string{"bob@example.com", "nobody@example.com"},
		"itemIds":    []string{created.ID},
		"itemType":   "credential",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("share: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	shareRes := decodeBody[map[string]any](t, rr)
	if shareRes["shared"] != float64(1) {
		t.Errorf("shared = %v; want 1", shareRes["shared"])
	}

	inbox := decodeBody[[]service.SharedItemView](t, f.do(t, http.MethodGet, "/api/shares/inbox", bob, nil))
	if len(inbox) != 1 {
		t.Fatalf("bob inbox size = %d; want 1", len(inbox))
	}
	if inbox[0].Credential == nil || inbox[0].Credential.Title != "Github" {
		t.Fatalf("inbox entry = %+v; want the joined Github credential", inbox[0])
	}

	outbox := decodeBody[[]service.SharedItemView](t, f.do(t, http.MethodGet, "/api/shares/outbox", alice, nil))
	if len(outbox) != 1 {
		t.Fatalf("alice outbox size = %d; want 1", len(outbox))
	}

	// Only the recipient may accept.
	rr = f.do(t, http.MethodPost, "/api/shares/"+inbox[0].ID+"/accept", alice, nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("sender accept: status = %d; want %d", rr.Code, http.StatusForbidden)
	}

	before := f.credentials.Len()
	rr = f.do(t, http.MethodPost, "/api/shares/"+inbox[0].ID+"/accept", bob, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("accept: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if f.credentials.Len() != before+1 {
		t.Fatalf("credential count = %d after accept; want %d", f.credentials.Len(), before+1)
	}

	copied, ok := f.credentials.FindBy(func(c models.Credential) bool {
		return c.Title == "Github" && c.ID != created.ID
	})
	if !ok {
		t.Fatal("accepted copy not found in the store")
	}
	if copied.Username != "alice" || copied.Password != "p" {
		t.Errorf("copy = %+v; want the shared fields", copied)
	}

	// Accepting again must not duplicate the copy.
	rr = f.do(t, http.MethodPost, "/api/shares/"+inbox[0].ID+"/accept", bob, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("re-accept: status = %d", rr.Code)
	}
	if f.credentials.Len() != before+1 {
		t.Errorf("credential count = %d after re-accept; want %d", f.credentials.Len(), before+1)
	}

	if got := len(decodeBody[[]service.SharedItemView](t, f.do(t, http.MethodGet, "/api/shares/inbox", bob, nil))); got != 0 {
		t.Errorf("bob inbox size = %d after accept; want 0", got)
	}
}

func TestShareDecline(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	f.register(t, "Bob", "bob@example.com", "secret-pass")
	f.register(t, "Carol", "carol@example.com", "secret-pass")
	alice := f.login(t, "alice@example.com", "secret-pass")
	bob := f.login(t, "bob@example.com", "secret-pass")
	carol := f.login(t, "carol@example.com", "secret-pass")

	created := decodeBody[models.Credential](t, f.do(t, http.MethodPost, "/api/credentials", alice, models.Credential{
		Title: "Github", Username: "u", Password: "p",
	}))
	f.do(t, http.MethodPost, "/api/shares", alice, map[string]any{
		"recipients": []string{"bob@example.com"},
		"itemIds":    []string{created.ID},
		"itemType":   "credential",
	})
	inbox := decodeBody[[]service.SharedItemView](t, f.do(t, http.MethodGet, "/api/shares/inbox", bob, nil))

	// A third party may not delete the record.
	rr := f.do(t, http.MethodDelete, "/api/shares/"+inbox[0].ID, carol, nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("third-party delete: status = %d; want %d", rr.Code, http.StatusForbidden)
	}

	rr = f.do(t, http.MethodDelete, "/api/shares/"+inbox[0].ID, bob, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("decline: status = %d", rr.Code)
	}
	if f.shares.Records().Len() != 0 {
		t.Errorf("share records = %d after decline; want 0", f.shares.Records().Len())
	}

	// Declining twice is not an error.
	rr = f.do(t, http.MethodDelete, "/api/shares/"+inbox[0].ID, bob, nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("second decline: status = %d; want %d", rr.Code, http.StatusNoContent)
	}
}

func TestShare_RequiresRecipients(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	alice := f.login(t, "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/shares", alice, map[string]any{
		"recipients": []string{},
		"itemIds":    []string{"x"},
		"itemType":   "credential",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestAdminEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	f.register(t, "Bob", "bob@example.com", "secret-pass")

	alice := f.login(t, "alice@example.com", "secret-pass")

	// A regular user is rejected.
	rr := f.do(t, http.MethodGet, "/api/users", alice, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("non-admin list: status = %d; want %d", rr.Code, http.StatusForbidden)
	}

	// Promote Alice; the session picks the new role up on the next request
	// because the role is resolved at read time.
	admin, _ := f.users.FindByEmail("alice@example.com")
	f.users.Mutate(admin.ID, func(u *models.User) { u.Role = models.RoleAdmin })

	rr = f.do(t, http.MethodGet, "/api/users", alice, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin list: status = %d", rr.Code)
	}
	users := decodeBody[[]models.User](t, rr)
	if len(users) != 2 {
		t.Fatalf("user count = %d; want 2", len(users))
	}
	for _, u := range users {
		if u.Password != "" || u.SecurityAnswer != "" {
			t.Errorf("user %s has secrets in the listing", u.Email)
		}
	}

	bob, _ := f.users.FindByEmail("bob@example.com")

	rr = f.do(t, http.MethodPost, "/api/users/"+bob.ID+"/toggle", alice, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("toggle: status = %d", rr.Code)
	}
	toggled, _ := f.users.Find(bob.ID)
	if toggled.Active {
		t.Error("bob still active after toggle")
	}

	rr = f.do(t, http.MethodPost, "/api/users/"+bob.ID+"/reset-password", alice, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("reset: status = %d", rr.Code)
	}
	reset, _ := f.users.Find(bob.ID)
	if reset.Password != models.DefaultResetPassword {
		t.Errorf("bob password = %q; want the administrative default", reset.Password)
	}

	rr = f.do(t, http.MethodDelete, "/api/users/"+bob.ID, alice, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete user: status = %d", rr.Code)
	}
	if _, ok := f.users.Find(bob.ID); ok {
		t.Error("bob still present after delete")
	}
}

func TestPasswordRecoveryFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/auth/forgot", "", map[string]string{"email": "alice@example.com"})
	if rr.Code != http.StatusOK {
		t.Fatalf("forgot: status = %d", rr.Code)
	}
	res := decodeBody[map[string]string](t, rr)
	if res["securityQuestion"] != "Favorite color?" {
		t.Errorf("securityQuestion = %q; want the stored question", res["securityQuestion"])
	}

	rr = f.do(t, http.MethodPost, "/api/auth/forgot", "", map[string]string{"email": "nobody@example.com"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("forgot unknown: status = %d; want %d", rr.Code, http.StatusNotFound)
	}

	rr = f.do(t, http.MethodPost, "/api/auth/forgot/reset", "", map[string]string{
		"email":       "alice@example.com",
		"answer":      "red",
		"newPassword": "recovered-pass",
	})
	if rr.Code != http.StatusForbidden {
		t.Errorf("wrong answer: status = %d; want %d", rr.Code, http.StatusForbidden)
	}

	// The answer comparison is case-insensitive.
	rr = f.do(t, http.MethodPost, "/api/auth/forgot/reset", "", map[string]string{
		"email":       "alice@example.com",
		"answer":      "BLUE",
		"newPassword": "recovered-pass",
	})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("reset: status = %d, body = %s", rr.Code, rr.Body.String())
	}

	f.login(t, "alice@example.com", "recovered-pass")
}

func TestChangePasswordFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "another-pass",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("wrong current: status = %d; want %d", rr.Code, http.StatusBadRequest)
	}

	rr = f.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "secret-pass",
		"newPassword":     "short",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("short new password: status = %d; want %d", rr.Code, http.StatusBadRequest)
	}

	rr = f.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "secret-pass",
		"newPassword":     "another-pass",
	})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("change: status = %d", rr.Code)
	}

	f.login(t, "alice@example.com", "another-pass")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("logout: status = %d", rr.Code)
	}

	rr = f.do(t, http.MethodGet, "/api/credentials", token, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("request after logout: status = %d; want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestVaultExportImport(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{Title: "Github", Username: "u", Password: "p"})
	f.do(t, http.MethodPost, "/api/notes", token, models.Note{Title: "Wifi", Content: "hunter2"})

	rr := f.do(t, http.MethodGet, "/api/vault/export", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("export: status = %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd == "" {
		t.Error("export has no Content-Disposition header")
	}
	exported := rr.Body.Bytes()

	// Wipe and restore.
	f.credentials.ReplaceAll(nil)
	f.notes.ReplaceAll(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/vault/import", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("import: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if f.credentials.Len() != 1 || f.notes.Len() != 1 {
		t.Errorf("restored sizes = %d/%d; want 1/1", f.credentials.Len(), f.notes.Len())
	}
}

func TestVaultImport_RejectsInvalidDocument(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	f.do(t, http.MethodPost, "/api/credentials", token, models.Credential{Title: "keep", Username: "u", Password: "p"})

	req := httptest.NewRequest(http.MethodPost, "/api/vault/import", bytes.NewReader([]byte(`{"credentials": []}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("import invalid: status = %d; want %d", rec.Code, http.StatusBadRequest)
	}
	if f.credentials.Len() != 1 {
		t.Error("import mutated the stores despite validation failure")
	}
}

func TestToolEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Alice", "alice@example.com", "secret-pass")
	token := f.login(t, "alice@example.com", "secret-pass")

	rr := f.do(t, http.MethodPost, "/api/tools/generate-password", token, map[string]any{
		"length":       16,
		"useUppercase": true,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("generate: status = %d", rr.Code)
	}
	res := decodeBody[map[string]any](t, rr)
	if res["success"] != true {
		t.Fatalf("generate result = %v; want success", res)
	}
	data, _ := res["data"].(map[string]any)
	if data["password"] != "xK9#mP2$vL5!" {
		t.Errorf("password = %v; want the stubbed value", data["password"])
	}

	// Validation failures surface as envelope failures, not HTTP errors.
	rr = f.do(t, http.MethodPost, "/api/tools/generate-password", token, map[string]any{"length": 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("generate invalid: status = %d; want %d", rr.Code, http.StatusOK)
	}
	res = decodeBody[map[string]any](t, rr)
	if res["success"] != false {
		t.Error("generate with invalid length reported success")
	}

	rr = f.do(t, http.MethodPost, "/api/tools/dark-web", token, map[string]string{"email": "alice@example.com"})
	res = decodeBody[map[string]any](t, rr)
	if res["success"] != false || res["reason"] != "API Key is required." {
		t.Errorf("dark-web without key = %v; want the key-required failure", res)
	}

	rr = f.do(t, http.MethodPost, "/api/tools/dark-web", token, map[string]string{
		"email":  "alice@example.com",
		"apiKey": "k",
	})
	res = decodeBody[map[string]any](t, rr)
	if res["success"] != true {
		t.Errorf("dark-web = %v; want success", res)
	}
}

func TestContentTypeEnforced(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{"email":"a","password":"b"}`)))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d; want %d", rr.Code, http.StatusUnsupportedMediaType)
	}
}
