package api

import (
	"fmt"
	"html/template"
	"time"

	"github.com/terraincognita07/invoicehero/internal/services"
)

type HandlerOptions struct {
	Location           *time.Location
	PaymentsConfigured bool
	Identity           services.IdentityOptions
	Now                func() time.Time
}

type Handler struct {
	identity *services.IdentityService
	invoices *services.InvoiceService
	clients  *services.ClientService
	settings *services.SettingsService
	stats    *services.StatsService
	export   *services.ExportService

	location           *time.Location
	paymentsConfigured bool
	templates          *template.Template
	now                func() time.Time
}

func NewHandler(repos services.Repositories, options HandlerOptions) (*Handler, error) {
	location := options.Location
	if location == nil {
		location = time.UTC
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	now := options.Now
	if now == nil {
		now = time.Now
	}

	settings := services.NewSettingsService(repos.Settings)
	return &Handler{
		identity:           services.NewIdentityService(repos.Users, options.Identity),
		invoices:           services.NewInvoiceService(repos.Invoices, settings, location).WithClock(now),
		clients:            services.NewClientService(repos.Clients),
		settings:           settings,
		stats:              services.NewStatsService(repos.Invoices, repos.Clients),
		export:             services.NewExportService(repos),
		location:           location,
		paymentsConfigured: options.PaymentsConfigured,
		templates:          templates,
		now:                now,
	}, nil
}

func (handler *Handler) localNow() time.Time {
	return handler.now().In(handler.location)
}
