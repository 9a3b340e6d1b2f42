package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/internal/config"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/logger"
)

// identityClient talks to the auth service's REST API. Every request shares
// the client-level timeout from config; callers decide how a failure
// degrades.
type identityClient struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

func NewIdentityClient(cfg config.Config, log logger.Logger) (identity.Gateway, error) {
	if cfg.Gateway.BaseURL == "" {
		return nil, fmt.Errorf("gateway base_url is not configured")
	}

	log.Info("Identity Gateway client initialized", zap.String("base_url", cfg.Gateway.BaseURL))
	return &identityClient{
		baseURL: strings.TrimRight(cfg.Gateway.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Gateway.Timeout},
		log:     log,
	}, nil
}

func (c *identityClient) getJSON(ctx context.Context, path string, notFound error, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("cannot build gateway request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode gateway response: %w", err)
	}
	return nil
}

func (c *identityClient) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	u := &identity.User{}
	if err := c.getJSON(ctx, "/v1/users/"+id.String(), identity.ErrUserNotFound, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *identityClient) ListUsers(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	if err := c.getJSON(ctx, "/v1/users", identity.ErrUserNotFound, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *identityClient) GetCollege(ctx context.Context, id uuid.UUID) (*identity.College, error) {
	col := &identity.College{}
	if err := c.getJSON(ctx, "/v1/colleges/"+id.String(), identity.ErrCollegeNotFound, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (c *identityClient) ListColleges(ctx context.Context) ([]identity.College, error) {
	var colleges []identity.College
	if err := c.getJSON(ctx, "/v1/colleges", identity.ErrCollegeNotFound, &colleges); err != nil {
		return nil, err
	}
	return colleges, nil
}

// UpdateUserName pushes a display-name change back to the auth service.
// Best-effort; callers log and swallow failures.
func (c *identityClient) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return fmt.Errorf("cannot marshal user update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/v1/users/"+id.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("cannot build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return identity.ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}
