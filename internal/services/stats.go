package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/invoicehero/internal/models"
)

type InvoiceStats struct {
	InvoiceCount     int     `json:"invoiceCount"`
	Revenue          float64 `json:"revenue"`
	PaidCount        int     `json:"paidCount"`
	MonthRevenue     float64 `json:"monthRevenue"`
	MonthCount       int     `json:"monthCount"`
	Outstanding      float64 `json:"outstanding"`
	OutstandingCount int     `json:"outstandingCount"`
	Overdue          float64 `json:"overdue"`
	OverdueCount     int     `json:"overdueCount"`
}

type ClientTotal struct {
	ClientID     string  `json:"clientId"`
	Name         string  `json:"name"`
	InvoiceCount int     `json:"invoiceCount"`
	Total        float64 `json:"total"`
}

type StatsOverview struct {
	InvoiceStats
	Clients []ClientTotal `json:"clients"`
}

// BuildInvoiceStats aggregates revenue figures over invoices. The current
// month is taken from now in its own location.
func BuildInvoiceStats(invoices []models.Invoice, now time.Time) InvoiceStats {
	var revenue, monthRevenue, outstanding, overdue decimal.Decimal
	stats := InvoiceStats{InvoiceCount: len(invoices)}
	year, month, _ := now.Date()

	for _, invoice := range invoices {
		amount := invoice.Amount.Decimal()
		if invoice.Status == models.InvoiceStatusPaid {
			revenue = revenue.Add(amount)
			stats.PaidCount++

			createdYear, createdMonth, _ := invoice.CreatedAt.In(now.Location()).Date()
			if createdYear == year && createdMonth == month {
				monthRevenue = monthRevenue.Add(amount)
				stats.MonthCount++
			}
			continue
		}

		outstanding = outstanding.Add(amount)
		stats.OutstandingCount++
		if IsInvoiceOverdue(invoice.Status, invoice.DueDate, now) {
			overdue = overdue.Add(amount)
			stats.OverdueCount++
		}
	}

	stats.Revenue = revenue.InexactFloat64()
	stats.MonthRevenue = monthRevenue.InexactFloat64()
	stats.Outstanding = outstanding.InexactFloat64()
	stats.Overdue = overdue.InexactFloat64()
	return stats
}

// BuildClientTotals counts invoices and sums amounts per client. Clients are
// listed in the given order, followed by client ids that no longer resolve,
// named Unknown.
func BuildClientTotals(clients []models.Client, invoices []models.Invoice) []ClientTotal {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, invoice := range invoices {
		sums[invoice.ClientID] = sums[invoice.ClientID].Add(invoice.Amount.Decimal())
		counts[invoice.ClientID]++
	}

	totals := make([]ClientTotal, 0, len(clients))
	known := make(map[string]struct{}, len(clients))
	for _, client := range clients {
		known[client.ID] = struct{}{}
		totals = append(totals, ClientTotal{
			ClientID:     client.ID,
			Name:         client.Name,
			InvoiceCount: counts[client.ID],
			Total:        sums[client.ID].InexactFloat64(),
		})
	}

	orphaned := make([]string, 0)
	for clientID := range counts {
		if _, ok := known[clientID]; !ok {
			orphaned = append(orphaned, clientID)
		}
	}
	sort.Strings(orphaned)
	for _, clientID := range orphaned {
		totals = append(totals, ClientTotal{
			ClientID:     clientID,
			Name:         models.UnknownClientName,
			InvoiceCount: counts[clientID],
			Total:        sums[clientID].InexactFloat64(),
		})
	}
	return totals
}

// ClientNameLookup resolves client ids to display names, falling back to
// Unknown for deleted or foreign clients.
func ClientNameLookup(clients []models.Client) func(clientID string) string {
	names := make(map[string]string, len(clients))
	for _, client := range clients {
		names[client.ID] = client.Name
	}
	return func(clientID string) string {
		if name, ok := names[clientID]; ok {
			return name
		}
		return models.UnknownClientName
	}
}

type StatsInvoiceReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.Invoice, error)
}

type StatsClientReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.Client, error)
}

type StatsService struct {
	invoices StatsInvoiceReader
	clients  StatsClientReader
}

func NewStatsService(invoices StatsInvoiceReader, clients StatsClientReader) *StatsService {
	return &StatsService{invoices: invoices, clients: clients}
}

// Overview recomputes the caller's statistics from the current records.
func (service *StatsService) Overview(ctx context.Context, userID string, now time.Time) (overview StatsOverview, err error) {
	ctx, span := startSpan(ctx, "StatsService.Overview", userID)
	defer func() { finishSpan(span, err) }()

	invoices, err := service.invoices.ListByUser(ctx, userID)
	if err != nil {
		return StatsOverview{}, fmt.Errorf("%w: %v", ErrListInvoicesFailed, err)
	}
	clients, err := service.clients.ListByUser(ctx, userID)
	if err != nil {
		return StatsOverview{}, fmt.Errorf("%w: %v", ErrListClientsFailed, err)
	}

	return StatsOverview{
		InvoiceStats: BuildInvoiceStats(invoices, now),
		Clients:      BuildClientTotals(clients, invoices),
	}, nil
}
