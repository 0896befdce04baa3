package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ejardin/internal/models"
	"github.com/spf13/viper"
)

type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *APIClient) doRequest(method, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	token := viper.GetString("token")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error: %s", string(respBody))
	}

	return respBody, nil
}

func (c *APIClient) Login(email, password string) (string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	resp, err := c.doRequest("POST", "/api/v1/auth/login", body)
	if err != nil {
		return "", err
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", err
	}

	return result.Token, nil
}

func (c *APIClient) ListProducts(category string) ([]models.Product, error) {
	path := "/api/v1/products"
	if category != "" {
		path += "?category=" + category
	}

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *APIClient) ListOrders(status string) ([]models.Order, error) {
	path := "/api/v1/admin/orders"
	if status != "" {
		path += "?status=" + status
	}

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := json.Unmarshal(resp, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *APIClient) UpdateOrderStatus(id uint, status, trackingNumber string) error {
	body := map[string]string{
		"status": status,
	}
	if trackingNumber != "" {
		body["tracking_number"] = trackingNumber
	}

	_, err := c.doRequest("PUT", fmt.Sprintf("/api/v1/admin/orders/%d/status", id), body)
	return err
}

func (c *APIClient) ScheduleReport(kind, cadence, recipient string) (*models.ReportSchedule, error) {
	body := map[string]string{
		"kind":      kind,
		"cadence":   cadence,
		"recipient": recipient,
	}

	resp, err := c.doRequest("POST", "/api/v1/admin/reports/schedule", body)
	if err != nil {
		return nil, err
	}

	var schedule models.ReportSchedule
	if err := json.Unmarshal(resp, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *APIClient) RunReport(kind, cadence, recipient string) error {
	body := map[string]string{
		"kind":      kind,
		"cadence":   cadence,
		"recipient": recipient,
	}

	_, err := c.doRequest("POST", "/api/v1/admin/reports/run", body)
	return err
}

func (c *APIClient) ListReportSchedules() ([]models.ReportSchedule, error) {
	resp, err := c.doRequest("GET", "/api/v1/admin/reports/schedules", nil)
	if err != nil {
		return nil, err
	}

	var schedules []models.ReportSchedule
	if err := json.Unmarshal(resp, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *APIClient) GetReportData(reportType string, start, end time.Time) (json.RawMessage, error) {
	path := fmt.Sprintf("/api/v1/admin/reports/%s?start=%s&end=%s",
		reportType,
		start.Format(time.RFC3339),
		end.Format(time.RFC3339))

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp), nil
}
