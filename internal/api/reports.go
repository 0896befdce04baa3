package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/ejardin/internal/auth"
	"github.com/ejardin/internal/database"
	"github.com/ejardin/internal/models"
	"github.com/ejardin/internal/report"

	"github.com/gin-gonic/gin"
)

func (s *Server) scheduleReport(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Kind      models.ReportKind `json:"kind" binding:"required"`
		Cadence   models.Cadence    `json:"cadence" binding:"required"`
		Recipient string            `json:"recipient" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := s.runner.CreateSchedule(user.ID, req.Kind, req.Cadence, req.Recipient)
	if err != nil {
		if errors.Is(err, report.ErrInvalidCadence) || errors.Is(err, report.ErrInvalidReportKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to schedule report"})
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// runReport generates a report immediately and mails it, outside any
// schedule. The cadence only determines the lookback window.
func (s *Server) runReport(c *gin.Context) {
	var req struct {
		Kind      models.ReportKind `json:"kind" binding:"required"`
		Cadence   models.Cadence    `json:"cadence" binding:"required"`
		Recipient string            `json:"recipient" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := report.LookbackWindow(time.Now(), req.Cadence)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.gen.Generate(req.Kind, window)
	if err != nil {
		if errors.Is(err, report.ErrInvalidReportKind) || errors.Is(err, report.ErrUnsupportedReportKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	if err := s.mailer.Send(req.Recipient, "scheduledReport", map[string]interface{}{
		"kind":    req.Kind,
		"cadence": req.Cadence,
		"report":  result,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report sent", "recipient": req.Recipient})
}

func (s *Server) listReportSchedules(c *gin.Context) {
	var schedules []models.ReportSchedule
	if err := database.GetDB().Order("next_due_at asc").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

type dailySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type categoryInventory struct {
	Category      string  `json:"category"`
	TotalProducts int     `json:"total_products"`
	AveragePrice  float64 `json:"average_price"`
	TotalStock    int     `json:"total_stock"`
}

type monthlySignups struct {
	Month        string `json:"month"`
	NewCustomers int    `json:"new_customers"`
}

// getReportData serves on-demand report breakdowns for the admin
// dashboard. Unlike the scheduled generator, this surface does support
// the customers breakdown.
func (s *Server) getReportData(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch c.Param("type") {
	case "sales":
		data, err := s.salesByDay(window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
			return
		}
		c.JSON(http.StatusOK, data)
	case "inventory":
		data, err := s.inventoryByCategory()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
			return
		}
		c.JSON(http.StatusOK, data)
	case "customers":
		data, err := s.signupsByMonth(window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
			return
		}
		c.JSON(http.StatusOK, data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
	}
}

func parseWindow(c *gin.Context) (report.Window, error) {
	window := report.Window{
		Start: time.Now().AddDate(0, -1, 0),
		End:   time.Now(),
	}
	if start := c.Query("start"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return window, errors.New("invalid start time")
		}
		window.Start = t
	}
	if end := c.Query("end"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return window, errors.New("invalid end time")
		}
		window.End = t
	}
	return window, nil
}

func (s *Server) salesByDay(window report.Window) ([]dailySales, error) {
	var orders []models.Order
	if err := database.GetDB().
		Where("created_at BETWEEN ? AND ?", window.Start, window.End).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]*dailySales)
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &dailySales{Date: day}
			byDay[day] = entry
		}
		entry.Sales += o.TotalPrice
		entry.Orders++
	}

	result := make([]dailySales, 0, len(byDay))
	for _, entry := range byDay {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (s *Server) inventoryByCategory() ([]categoryInventory, error) {
	var products []models.Product
	if err := database.GetDB().Find(&products).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[string]*categoryInventory)
	priceSums := make(map[string]float64)
	for _, p := range products {
		entry, ok := byCategory[p.Category]
		if !ok {
			entry = &categoryInventory{Category: p.Category}
			byCategory[p.Category] = entry
		}
		entry.TotalProducts++
		entry.TotalStock += p.Stock
		priceSums[p.Category] += p.Price
	}

	result := make([]categoryInventory, 0, len(byCategory))
	for category, entry := range byCategory {
		entry.AveragePrice = priceSums[category] / float64(entry.TotalProducts)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result, nil
}

func (s *Server) signupsByMonth(window report.Window) ([]monthlySignups, error) {
	var users []models.User
	if err := database.GetDB().
		Where("created_at BETWEEN ? AND ?", window.Start, window.End).
		Find(&users).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[string]int)
	for _, u := range users {
		byMonth[u.CreatedAt.Format("2006-01")]++
	}

	result := make([]monthlySignups, 0, len(byMonth))
	for month, count := range byMonth {
		result = append(result, monthlySignups{Month: month, NewCustomers: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result, nil
}
