package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/invoices/:id", func(c *fiber.Ctx) error {
		return c.SendString(c.Params("id"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(fiber.MethodGet, "/api/invoices/:id", "200"))
	for _, id := range []string{"inv_a", "inv_b"} {
		response, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/invoices/"+id, nil), -1)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		response.Body.Close()
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(fiber.MethodGet, "/api/invoices/:id", "200"))

	if after-before != 2 {
		t.Fatalf("expected 2 requests under the route pattern, got %v", after-before)
	}
}

func TestObserveInvoiceMutationSplitsResults(t *testing.T) {
	okBefore := testutil.ToFloat64(invoiceMutations.WithLabelValues("create", "ok"))
	errBefore := testutil.ToFloat64(invoiceMutations.WithLabelValues("create", "error"))

	ObserveInvoiceMutation("create", nil)
	ObserveInvoiceMutation("create", errors.New("disk full"))

	if got := testutil.ToFloat64(invoiceMutations.WithLabelValues("create", "ok")) - okBefore; got != 1 {
		t.Fatalf("expected one ok mutation, got %v", got)
	}
	if got := testutil.ToFloat64(invoiceMutations.WithLabelValues("create", "error")) - errBefore; got != 1 {
		t.Fatalf("expected one failed mutation, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveUserProvisioned("explicit")

	app := fiber.New()
	app.Get("/metrics", Handler())

	response, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	if !strings.Contains(string(body), "invoicehero_users_provisioned_total") {
		t.Fatalf("expected provisioned counter in metrics output")
	}
}
