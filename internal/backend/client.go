package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobportal/web/internal/metrics"
	"github.com/jobportal/web/internal/models"
)

// ErrUnauthorized is returned for any 401 from the backend, so callers
// can collapse "token invalid" and "token expired" into one path.
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError carries the backend's own message for a non-success reply.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("backend: request failed (status %d)", e.Status)
}

// Client talks to the job-portal REST API. Every authenticated call
// takes the bearer token explicitly; the client itself holds no
// session state.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the {success, message, ...} shape every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Jobs    json.RawMessage `json:"jobs"`
	Job     json.RawMessage `json:"job"`
}

// GetUser exchanges a stored token for the user record it belongs to.
// This is the resolution call behind the session cache.
func (c *Client) GetUser(ctx context.Context, token string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/user/getUser", token, struct{}{})
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("backend: decoding user: %w", err)
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token plus the user record.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", "", body)
	if err != nil {
		return "", nil, err
	}
	var user models.User
	if len(env.User) > 0 {
		if err := json.Unmarshal(env.User, &user); err != nil {
			return "", nil, fmt.Errorf("backend: decoding user: %w", err)
		}
	}
	return env.Token, &user, nil
}

// Register creates a regular user account.
func (c *Client) Register(ctx context.Context, req any) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", "", req)
	return err
}

// CreateEmployee creates an employee account. Admin token required;
// the guard enforces that before the handler ever calls this.
func (c *Client) CreateEmployee(ctx context.Context, token string, req any) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/auth/create-employee", token, req)
	return err
}

// UpdateUser saves profile changes and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, token string, req any) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/v1/user/update-user", token, req)
	if err != nil {
		return nil, err
	}
	raw := env.Data
	if len(raw) == 0 {
		raw = env.User
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("backend: decoding user: %w", err)
	}
	return &user, nil
}

// ListJobs fetches every visible job posting.
func (c *Client) ListJobs(ctx context.Context, token string) ([]models.Job, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/jobs", token, nil)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	if err := json.Unmarshal(env.Jobs, &jobs); err != nil {
		return nil, fmt.Errorf("backend: decoding jobs: %w", err)
	}
	return jobs, nil
}

// GetJob fetches a single posting by id.
func (c *Client) GetJob(ctx context.Context, token, id string) (*models.Job, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/jobs/"+id, token, nil)
	if err != nil {
		return nil, err
	}
	raw := env.Job
	if len(raw) == 0 {
		raw = env.Data
	}
	var job models.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("backend: decoding job: %w", err)
	}
	return &job, nil
}

// CreateJob posts a new job.
func (c *Client) CreateJob(ctx context.Context, token string, req any) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/jobs", token, req)
	return err
}

// ApplyJob submits an application for the given posting.
func (c *Client) ApplyJob(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/jobs/"+id+"/apply", token, struct{}{})
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveBackendRequest(path, time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("backend: decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}
