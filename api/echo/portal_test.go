package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/guard"
	"github.com/shulehub/shule/core/nav"
	"github.com/shulehub/shule/core/session"
	logsvc "github.com/shulehub/shule/services/logger"
	staticreg "github.com/shulehub/shule/storage/registry/static"
)

func setupServer(t *testing.T) (Server, *session.Store) {
	t.Helper()
	return setupServerWith(t, nil)
}

// setupServerWith builds a full server; checker (if non-nil) replaces the
// registry-backed credential validator.
func setupServerWith(t *testing.T, checker session.CredentialChecker) (Server, *session.Store) {
	t.Helper()

	conf := &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "Shule",
		SecretKey: "test-secret-key",
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
			LoginTimeout:       2 * time.Second,
		},
	}

	validate, translator := core.NewValidator()
	auth.RegisterValidators(validate, translator)

	sessions := session.NewStore()
	views := nav.NewRegistry()
	if checker == nil {
		checker = auth.NewCredentialValidator(staticreg.NewRegistry(), validate, translator)
	}

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logsvc.NewConsoleLogger(log.New(ioutil.Discard, "", 0)),
		Sessions:       sessions,
		LoginFlow:      session.NewController(sessions, checker, views, validate, translator),
		Views:          views,
		Guard:          guard.NewGuard(views),
		Translator:     translator,
	})
	return srv, sessions
}

func doJSON(t *testing.T, srv Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv Server, email, password string, role auth.Role) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, srv, http.MethodPost, "/v1/auth/login", echo.Map{
		"email":    email,
		"password": password,
		"role":     role,
	})
}

func TestPortalAPI_login(t *testing.T) {
	t.Run("every registered account can log into its role", func(t *testing.T) {
		for _, role := range auth.AllRoles {
			srv, sessions := setupServer(t)

			rec := login(t, srv, string(role)+"@example.com", "any-string-len>=6", role)
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp LoginResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, role, resp.Principal.Role)
			assert.Equal(t, nav.NewRegistry().DefaultView(role), resp.Destination)

			p, ok := sessions.Current()
			assert.True(t, ok)
			assert.Equal(t, resp.Principal, p)
		}
	})

	t.Run("wrong role claim gets the role-aware message and no session", func(t *testing.T) {
		srv, sessions := setupServer(t)

		rec := login(t, srv, "student@example.com", "valid-pass", auth.RoleAdmin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t,
			"This account is not authorized for Admin login. Please check your credentials or select the correct role.",
			body["error"])

		_, ok := sessions.Current()
		assert.False(t, ok)
	})

	t.Run("malformed input gets field errors", func(t *testing.T) {
		srv, sessions := setupServer(t)

		rec := login(t, srv, "not-an-email", "abc", auth.RoleStudent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fldErrs map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fldErrs))
		assert.Contains(t, fldErrs, "email")
		assert.Contains(t, fldErrs, "password")

		_, ok := sessions.Current()
		assert.False(t, ok)
	})

	t.Run("a login during a pending attempt is rejected as busy", func(t *testing.T) {
		checker := &stalledChecker{
			principal: auth.Principal{ID: "s1", Email: "student@example.com", Role: auth.RoleStudent},
			release:   make(chan struct{}),
		}
		srv, sessions := setupServerWith(t, checker)

		first := make(chan *httptest.ResponseRecorder, 1)
		go func() {
			first <- login(t, srv, "student@example.com", "long-enough-password", auth.RoleStudent)
		}()

		// wait for the first attempt to be in flight
		assert.Eventually(t, func() bool { return checker.Calls() == 1 }, time.Second, time.Millisecond)

		rec := login(t, srv, "student@example.com", "long-enough-password", auth.RoleStudent)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "a login attempt is already in progress", body["error"])

		_, ok := sessions.Current()
		assert.False(t, ok)

		close(checker.release)
		assert.Equal(t, http.StatusOK, (<-first).Code)

		p, ok := sessions.Current()
		assert.True(t, ok)
		assert.Equal(t, auth.RoleStudent, p.Role)
	})
}

// stalledChecker holds the credential check open until released.
type stalledChecker struct {
	principal auth.Principal
	release   chan struct{}
	calls     int32
}

func (c *stalledChecker) Validate(ctx context.Context, creds auth.Credentials) (auth.Principal, error) {
	atomic.AddInt32(&c.calls, 1)
	<-c.release
	return c.principal, nil
}

func (c *stalledChecker) Calls() int32 {
	return atomic.LoadInt32(&c.calls)
}

func TestPortalAPI_guardedViews(t *testing.T) {
	t.Run("unauthenticated navigation redirects to login", func(t *testing.T) {
		srv, _ := setupServer(t)

		for _, path := range []string{"/v1/portal/admin/dashboard", "/v1/portal/student/reports", "/v1/nav"} {
			rec := doJSON(t, srv, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %q", path)
		}
	})

	// login as faculty -> student views bounce to the faculty dashboard,
	// faculty views render
	t.Run("cross-role navigation redirects to own dashboard", func(t *testing.T) {
		srv, sessions := setupServer(t)

		rec := login(t, srv, "faculty@example.com", "long-enough-password", auth.RoleFaculty)
		assert.Equal(t, http.StatusOK, rec.Code)

		p, ok := sessions.Current()
		assert.True(t, ok)
		assert.Equal(t, auth.RoleFaculty, p.Role)

		rec = doJSON(t, srv, http.MethodGet, "/v1/portal/student/dashboard", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/portal/faculty/dashboard", rec.Header().Get(echo.HeaderLocation))

		rec = doJSON(t, srv, http.MethodGet, "/v1/portal/faculty/dashboard", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "Faculty Dashboard", payload["title"])
	})

	t.Run("nav lists the session role's views", func(t *testing.T) {
		srv, _ := setupServer(t)

		rec := login(t, srv, "government@example.com", "long-enough-password", auth.RoleGovernment)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, srv, http.MethodGet, "/v1/nav", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var views []nav.ViewDescriptor
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		assert.Equal(t, nav.NewRegistry().Views(auth.RoleGovernment), views)
	})

	t.Run("logout clears the session", func(t *testing.T) {
		srv, sessions := setupServer(t)

		rec := login(t, srv, "admin@example.com", "long-enough-password", auth.RoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, srv, http.MethodPost, "/v1/auth/logout", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, ok := sessions.Current()
		assert.False(t, ok)

		rec = doJSON(t, srv, http.MethodGet, "/v1/portal/admin/dashboard", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPortalAPI_queryRoles(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/auth/roles", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var roles []auth.RoleDescriptor
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
	assert.Equal(t, auth.Roles, roles)
}
