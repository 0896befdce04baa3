package mailer

import (
	"testing"
	"time"

	"github.com/ejardin/internal/models"
	"github.com/ejardin/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *Mailer {
	t.Helper()
	m, err := New(Config{SMTPHost: "localhost", SMTPPort: 25, From: "noreply@ejardin.fr"})
	require.NoError(t, err)
	return m
}

func TestRenderScheduledSalesReport(t *testing.T) {
	m := newTestMailer(t)

	result := &report.Result{
		Kind: models.ReportKindSales,
		Sales: &report.SalesReport{
			PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			TotalSales:  500,
			OrderCount:  10,
			TopProducts: []report.ProductSummary{
				{Name: "Rosier grimpant", TotalSold: 10, Revenue: 250},
			},
		},
	}

	subject, body, err := m.Render("scheduledReport", map[string]interface{}{
		"kind":    models.ReportKindSales,
		"cadence": models.CadenceMonthly,
		"report":  result,
	})
	require.NoError(t, err)

	assert.Contains(t, subject, "SALES")
	assert.Contains(t, subject, "MONTHLY")
	assert.Contains(t, body, "500.00")
	assert.Contains(t, body, "Rosier grimpant")
	assert.Contains(t, body, "01/01/2024")
}

func TestRenderScheduledInventoryReport(t *testing.T) {
	m := newTestMailer(t)

	result := &report.Result{
		Kind: models.ReportKindInventory,
		Inventory: &report.InventoryReport{
			Products:      []report.StockItem{{Name: "Fougère", Stock: 2}},
			LowStock:      []report.StockItem{{Name: "Fougère", Stock: 2}},
			TotalProducts: 1,
			LowStockCount: 1,
		},
	}

	subject, body, err := m.Render("scheduledReport", map[string]interface{}{
		"kind":    models.ReportKindInventory,
		"cadence": models.CadenceWeekly,
		"report":  result,
	})
	require.NoError(t, err)

	assert.Contains(t, subject, "INVENTORY")
	assert.Contains(t, body, "Foug")
	assert.Contains(t, body, "Stock faible")
}

func TestRenderOrderConfirmation(t *testing.T) {
	m := newTestMailer(t)

	order := &models.Order{
		Number:     "d2c1a9be",
		TotalPrice: 35,
		Items: []models.OrderItem{
			{Quantity: 1, Price: 25, Product: models.Product{Name: "Rosier grimpant"}},
			{Quantity: 2, Price: 5, Product: models.Product{Name: "Pot en terre cuite"}},
		},
	}

	subject, body, err := m.Render("orderConfirmation", map[string]interface{}{"order": order})
	require.NoError(t, err)

	assert.Contains(t, subject, "d2c1a9be")
	assert.Contains(t, body, "Rosier grimpant")
	assert.Contains(t, body, "35.00")
}

func TestRenderUnknownTemplate(t *testing.T) {
	m := newTestMailer(t)

	_, _, err := m.Render("passwordReset", nil)
	assert.Error(t, err)
}
