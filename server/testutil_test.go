package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarotlabs/go-tarot-server/auth"
	"github.com/tarotlabs/go-tarot-server/internal/config"
	"github.com/tarotlabs/go-tarot-server/readings"
	"github.com/tarotlabs/go-tarot-server/server"
	"github.com/tarotlabs/go-tarot-server/server/sessionstore"
	"github.com/tarotlabs/go-tarot-server/token"
)

// fakeProvider is a test double for the identity provider.
type fakeProvider struct {
	exchangeErr   error
	verifyErr     error
	identity      auth.Identity
	endSessionURL string

	exchangeCalls int
	lastCode      string
	lastVerifier  string
}

func (f *fakeProvider) AuthCodeURL(state, codeChallenge string) string {
	return "https://idp.example.com/v1/authorize?client_id=test&response_type=code&state=" +
		state + "&code_challenge=" + codeChallenge + "&code_challenge_method=S256"
}

func (f *fakeProvider) Exchange(_ context.Context, code, codeVerifier string) (*auth.TokenSet, error) {
	f.exchangeCalls++
	f.lastCode = code
	f.lastVerifier = codeVerifier
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &auth.TokenSet{IDToken: "raw-id-token", AccessToken: "access-token"}, nil
}

func (f *fakeProvider) VerifyIDToken(_ context.Context, _ string) (*auth.Identity, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	identity := f.identity
	return &identity, nil
}

func (f *fakeProvider) EndSessionURL(idTokenHint string) string {
	if f.endSessionURL == "" {
		return ""
	}
	return f.endSessionURL + "?id_token_hint=" + idTokenHint
}

// fakeCompleter returns a canned interpretation and records the request.
type fakeCompleter struct {
	lastRequest readings.CompletionRequest
	response    string
	err         error
}

func (f *fakeCompleter) Complete(_ context.Context, req readings.CompletionRequest) (string, error) {
	f.lastRequest = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// testEnv bundles the server under test with its injected collaborators.
type testEnv struct {
	srv       *server.Server
	provider  *fakeProvider
	store     *sessionstore.InMemoryStore
	tokens    *token.Manager
	completer *fakeCompleter
	repo      *readings.InMemoryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Port:               "8080",
		AppName:            "Tarot Server",
		Env:                "test",
		PublicDir:          t.TempDir(),
		AllowedOrigin:      "http://localhost:3000",
		JWTSecret:          "test-secret",
		SessionTokenTTL:    time.Hour,
		LoginSessionTTL:    30 * time.Minute,
		DemoMode:           true,
		RateLimitPerMinute: 100000,
		RateLimitBurst:     100000,
	}

	provider := &fakeProvider{
		identity: auth.Identity{ID: "sub-1", Email: "querent@example.com", Name: "Querent"},
	}
	store := sessionstore.NewInMemoryStore(cfg.LoginSessionTTL)
	tokens := token.NewManager(token.NewHMACSigner(cfg.JWTSecret), cfg.SessionTokenTTL)
	completer := &fakeCompleter{response: "The cards favour bold action."}
	repo := readings.NewInMemoryRepo()

	return &testEnv{
		srv:       server.New(cfg, provider, store, tokens, readings.NewService(completer), repo),
		provider:  provider,
		store:     store,
		tokens:    tokens,
		completer: completer,
		repo:      repo,
	}
}

// newProductionLikeEnv builds an environment with demo mode disabled, so
// only the standard login flow routes are registered.
func newProductionLikeEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)

	cfg := &config.Config{
		Port:               "8080",
		AppName:            "Tarot Server",
		Env:                "test",
		PublicDir:          t.TempDir(),
		AllowedOrigin:      "http://localhost:3000",
		JWTSecret:          "test-secret",
		SessionTokenTTL:    time.Hour,
		LoginSessionTTL:    30 * time.Minute,
		RateLimitPerMinute: 100000,
		RateLimitBurst:     100000,
	}
	env.srv = server.New(cfg, env.provider, env.store, env.tokens,
		readings.NewService(env.completer), env.repo)
	return env
}

// browser drives the server the way a cookie-holding user agent would.
type browser struct {
	t       *testing.T
	srv     http.Handler
	cookies map[string]*http.Cookie
	headers map[string]string
}

func newBrowser(t *testing.T, srv http.Handler) *browser {
	return &browser{
		t:       t,
		srv:     srv,
		cookies: make(map[string]*http.Cookie),
		headers: make(map[string]string),
	}
}

func (b *browser) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	b.t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range b.headers {
		req.Header.Set(name, value)
	}
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	b.srv.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(b.cookies, cookie.Name)
			continue
		}
		b.cookies[cookie.Name] = cookie
	}
	return rec
}

func (b *browser) cookie(name string) *http.Cookie {
	return b.cookies[name]
}

// envelope mirrors the server's JSON response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

// responseCookie finds a Set-Cookie of the given name in a single response.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
