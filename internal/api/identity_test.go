package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/terraincognita07/invoicehero/internal/models"
	"github.com/terraincognita07/invoicehero/internal/security"
	"github.com/terraincognita07/invoicehero/internal/services"
)

func TestHealthReportsPaymentsFlag(t *testing.T) {
	t.Parallel()

	for _, configured := range []bool{false, true} {
		config := defaultTestAppConfig()
		config.paymentsConfigured = configured
		app := newTestAppWithConfig(t, config)

		status, payload := sendRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
		if status != http.StatusOK {
			t.Fatalf("expected health status 200, got %d", status)
		}
		health := decodeResponse[map[string]any](t, payload)
		if health["status"] != "ok" || health["stripe"] != configured {
			t.Fatalf("unexpected health payload: %v", health)
		}
		if health["timestamp"] != "2026-03-15T12:00:00.000Z" {
			t.Fatalf("unexpected timestamp: %v", health["timestamp"])
		}
	}
}

func TestMissingCredentialUsesFallbackUser(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, payload := doJSON(t, app, http.MethodGet, "/api/me", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	user := decodeResponse[models.User](t, payload)
	if user.ID != "demo" || user.Email != "demo@demo.com" || user.Name != models.PlaceholderUserName {
		t.Fatalf("unexpected fallback user: %+v", user)
	}
}

func TestMissingCredentialRejectedWithoutFallback(t *testing.T) {
	t.Parallel()

	config := defaultTestAppConfig()
	config.identity.DefaultUserID = ""
	app := newTestAppWithConfig(t, config)

	status, payload := doJSON(t, app, http.MethodGet, "/api/invoices", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", status)
	}
	if message := readAPIError(t, payload); message != "unauthorized" {
		t.Fatalf("expected unauthorized error, got %q", message)
	}
}

func TestUnknownUserRejectedWithoutAutoProvisioning(t *testing.T) {
	t.Parallel()

	config := defaultTestAppConfig()
	config.identity.AutoProvision = false
	app := newTestAppWithConfig(t, config)

	status, payload := doJSON(t, app, http.MethodGet, "/api/invoices", "stranger", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", status)
	}
	if message := readAPIError(t, payload); message != "user not provisioned" {
		t.Fatalf("expected user not provisioned error, got %q", message)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/users", "", map[string]any{"id": "stranger", "email": "s@example.com"})
	if status != http.StatusCreated {
		t.Fatalf("expected provisioning status 201, got %d", status)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/me", "stranger", nil)
	if status != http.StatusOK {
		t.Fatalf("expected provisioned user to resolve, got %d", status)
	}
	if user := decodeResponse[models.User](t, payload); user.Email != "s@example.com" {
		t.Fatalf("expected stored email, got %q", user.Email)
	}

	status, payload = doJSON(t, app, http.MethodPost, "/api/users", "", map[string]any{"id": "stranger"})
	if status != http.StatusConflict {
		t.Fatalf("expected duplicate provisioning status 409, got %d", status)
	}
	if message := readAPIError(t, payload); message != "user already exists" {
		t.Fatalf("expected user already exists error, got %q", message)
	}
}

func TestSignedTokensGateAccess(t *testing.T) {
	t.Parallel()

	tokens, err := security.NewTokenManager("test-secret-with-enough-length", time.Hour)
	if err != nil {
		t.Fatalf("init token manager: %v", err)
	}
	config := testAppConfig{identity: services.IdentityOptions{AutoProvision: false, Tokens: tokens}}
	app := newTestAppWithConfig(t, config)

	status, payload := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]any{"name": "Carol"})
	if status != http.StatusCreated {
		t.Fatalf("expected provisioning status 201, got %d: %s", status, payload)
	}
	result := decodeResponse[services.ProvisionResult](t, payload)
	if result.Token == "" {
		t.Fatalf("expected a bearer token in signed mode")
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/me", result.User.ID, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected raw user id to be rejected in signed mode, got %d", status)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/me", "Bearer "+result.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected signed token to resolve, got %d", status)
	}
	if user := decodeResponse[models.User](t, payload); user.ID != result.User.ID || user.Name != "Carol" {
		t.Fatalf("unexpected user for token: %+v", user)
	}
}

func TestMalformedProvisionPayloadIsRejected(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, payload := sendRequest(t, app, newRawRequest(http.MethodPost, "/api/users", "", "[1,"))
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if message := readAPIError(t, payload); message != "invalid payload" {
		t.Fatalf("expected invalid payload error, got %q", message)
	}
}
