package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/invoicehero/internal/db"
	"github.com/terraincognita07/invoicehero/internal/services"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type testAppConfig struct {
	identity           services.IdentityOptions
	paymentsConfigured bool
}

func defaultTestAppConfig() testAppConfig {
	return testAppConfig{
		identity: services.IdentityOptions{DefaultUserID: "demo", AutoProvision: true},
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithConfig(t, defaultTestAppConfig())
}

func newTestAppWithConfig(t *testing.T, config testAppConfig) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "invoicehero.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.CloseSQLite(database); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	repos := db.NewRepositories(database)
	handler, err := NewHandler(services.Repositories{
		Users:    repos.Users,
		Clients:  repos.Clients,
		Invoices: repos.Invoices,
		Settings: repos.Settings,
	}, HandlerOptions{
		Location:           time.UTC,
		PaymentsConfigured: config.paymentsConfigured,
		Identity:           config.identity,
		Now:                func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{Immutable: true})
	RegisterRoutes(app, handler)
	return app
}

// doJSON sends body (marshaled when not nil) as userID and returns the
// response status and raw body.
func doJSON(t *testing.T, app *fiber.App, method string, path string, userID string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if userID != "" {
		request.Header.Set(fiber.HeaderAuthorization, userID)
	}
	return sendRequest(t, app, request)
}

func sendRequest(t *testing.T, app *fiber.App, request *http.Request) (int, []byte) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response.StatusCode, payload
}

func decodeResponse[T any](t *testing.T, payload []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		t.Fatalf("decode response %q: %v", string(payload), err)
	}
	return value
}

func readAPIError(t *testing.T, payload []byte) string {
	t.Helper()
	return decodeResponse[map[string]string](t, payload)["error"]
}

func newRawRequest(method string, path string, userID string, body string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if userID != "" {
		request.Header.Set(fiber.HeaderAuthorization, userID)
	}
	return request
}

func decodeBody(response *http.Response, target any) error {
	return json.NewDecoder(response.Body).Decode(target)
}
