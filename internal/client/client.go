package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	domain "github.com/crewapp/crew-scheduler/internal/domain/dayoff"
	"github.com/crewapp/crew-scheduler/internal/models"
)

const (
	defaultTimeout = 30 * time.Second
)

// DayOffPayload is the wire shape for creating or updating a day off.
type DayOffPayload struct {
	InitHour    time.Time `json:"init_hour"`
	EndHour     time.Time `json:"end_hour"`
	Repeat      bool      `json:"repeat"`
	RepeatType  string    `json:"repeat_type,omitempty"`
	RepeatValue string    `json:"repeat_value,omitempty"`
}

// Client talks to the scheduler API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new API client. The token may be empty until Login
// succeeds.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	return c.token
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(email, password string) (*models.User, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}

	var res loginResponse
	if err := c.doRequest("POST", "/api/auth/login", req, &res); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	c.token = res.Token

	c.logger.Info("Logged in",
		zap.String("email", email),
		zap.Uint("user_id", res.User.ID))

	return &res.User, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(name, email, password string) (*models.User, error) {
	req := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}

	var res loginResponse
	if err := c.doRequest("POST", "/api/auth/register", req, &res); err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	c.token = res.Token

	return &res.User, nil
}

// Profile returns the authenticated user.
func (c *Client) Profile() (*models.User, error) {
	var res struct {
		User models.User `json:"user"`
	}
	if err := c.doRequest("GET", "/api/user/profile", nil, &res); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &res.User, nil
}

// DayOffs returns every day off of the authenticated user.
func (c *Client) DayOffs() ([]models.DayOff, error) {
	var items []models.DayOff
	if err := c.doRequest("GET", "/api/user/dayoff", nil, &items); err != nil {
		return nil, fmt.Errorf("failed to list day offs: %w", err)
	}
	return items, nil
}

// MonthDayOffs returns the day offs overlapping the given month.
func (c *Client) MonthDayOffs(year int, month time.Month) ([]models.DayOff, error) {
	path := fmt.Sprintf("/api/user/dayoff?filter_type=month&year=%d&month=%d", year, int(month))

	var items []models.DayOff
	if err := c.doRequest("GET", path, nil, &items); err != nil {
		return nil, fmt.Errorf("failed to list month day offs: %w", err)
	}

	c.logger.Info("Month day offs retrieved",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("count", len(items)))

	return items, nil
}

// CreateDayOff creates a day off, expanding recurring drafts server-side.
func (c *Client) CreateDayOff(p DayOffPayload) (*models.DayOff, error) {
	var created models.DayOff
	if err := c.doRequest("POST", "/api/user/dayoff", p, &created); err != nil {
		return nil, fmt.Errorf("failed to create day off: %w", err)
	}

	c.logger.Info("Day off created",
		zap.Uint("id", created.ID),
		zap.Bool("repeat", created.Repeat),
		zap.Time("init_hour", created.InitHour))

	return &created, nil
}

// UpdateDayOff updates the occurrence with the given id, limited to scope.
func (c *Client) UpdateDayOff(id uint, scope domain.Scope, p DayOffPayload) (*models.DayOff, error) {
	path := fmt.Sprintf("/api/user/dayoff/%d?mode=%s", id, scope)

	var updated models.DayOff
	if err := c.doRequest("PUT", path, p, &updated); err != nil {
		return nil, fmt.Errorf("failed to update day off %d: %w", id, err)
	}

	c.logger.Info("Day off updated",
		zap.Uint("id", id),
		zap.String("mode", string(scope)))

	return &updated, nil
}

// DeleteDayOff removes the occurrence with the given id, limited to scope.
func (c *Client) DeleteDayOff(id uint, scope domain.Scope) error {
	path := fmt.Sprintf("/api/user/dayoff/%d?mode=%s", id, scope)

	if err := c.doRequest("DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete day off %d: %w", id, err)
	}

	c.logger.Info("Day off deleted",
		zap.Uint("id", id),
		zap.String("mode", string(scope)))

	return nil
}

// PixKeys lists the Pix keys of the authenticated user.
func (c *Client) PixKeys() ([]models.PixKey, error) {
	var keys []models.PixKey
	if err := c.doRequest("GET", "/api/user/pix", nil, &keys); err != nil {
		return nil, fmt.Errorf("failed to list pix keys: %w", err)
	}
	return keys, nil
}

// AddPixKey registers a Pix key; the server detects its type.
func (c *Client) AddPixKey(key string) (*models.PixKey, error) {
	req := map[string]string{"pix_key": key}

	var created models.PixKey
	if err := c.doRequest("POST", "/api/user/pix", req, &created); err != nil {
		return nil, fmt.Errorf("failed to add pix key: %w", err)
	}

	c.logger.Info("Pix key added",
		zap.Uint("id", created.ID),
		zap.String("key_type", created.KeyType))

	return &created, nil
}

// DeletePixKey removes a Pix key.
func (c *Client) DeletePixKey(id uint) error {
	if err := c.doRequest("DELETE", fmt.Sprintf("/api/user/pix/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete pix key %d: %w", id, err)
	}
	return nil
}

// doRequest performs an HTTP request with bearer authentication.
func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
