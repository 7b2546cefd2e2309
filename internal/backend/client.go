// Package backend implements the document-store client. The store is a
// managed platform reached over HTTPS; this client is a thin, typed proxy
// around its query, read, update and count endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rsilveira/licoes/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Licoes/1.0"
)

// Client implements domain.ContentRepository against the backend REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token string // current user's ID token, set after sign-in
}

// NewClient creates a new backend client
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetToken sets the ID token attached to subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// doRequest performs an authenticated JSON request
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	c.logger.Debug("backend request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "error", err)
		return nil, domain.ErrBackendUnreachable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return respBody, nil
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	default:
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			c.logger.Error("backend request error",
				"status", resp.StatusCode, "code", errResp.Error.Code, "message", errResp.Error.Message)
			return nil, fmt.Errorf("backend error %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		c.logger.Error("backend request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// RunQuery executes a constraint sequence against a collection
func (c *Client) RunQuery(ctx context.Context, kind domain.Kind, constraints []domain.Constraint, startAfter domain.Cursor, limit int) (domain.Page, error) {
	filters, orderBy := mapConstraints(constraints)

	reqBody := queryRequest{
		Filters:    filters,
		OrderBy:    orderBy,
		StartAfter: string(startAfter),
		Limit:      limit,
	}

	path := fmt.Sprintf("/v1/collections/%s:query", kind.Collection())
	body, err := c.doRequest(ctx, http.MethodPost, path, reqBody)
	if err != nil {
		return domain.Page{}, err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("query parse error", "error", err, "bodyLen", len(body))
		return domain.Page{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return domain.Page{
		Items:  MapDocuments(resp.Documents, kind),
		Cursor: domain.Cursor(resp.NextCursor),
	}, nil
}

// GetDocument fetches a single item by ID
func (c *Client) GetDocument(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
	path := fmt.Sprintf("/v1/collections/%s/%s", kind.Collection(), id)
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var doc documentDTO
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return mapDocument(doc, kind), nil
}

// AddFavorite atomically adds uid to the item's favoritedBy set
func (c *Client) AddFavorite(ctx context.Context, kind domain.Kind, id, uid string) error {
	return c.updateFavorites(ctx, kind, id, updateRequest{
		Field:      "favoritadoPor",
		ArrayUnion: []string{uid},
	})
}

// RemoveFavorite atomically removes uid from the item's favoritedBy set
func (c *Client) RemoveFavorite(ctx context.Context, kind domain.Kind, id, uid string) error {
	return c.updateFavorites(ctx, kind, id, updateRequest{
		Field:       "favoritadoPor",
		ArrayRemove: []string{uid},
	})
}

func (c *Client) updateFavorites(ctx context.Context, kind domain.Kind, id string, req updateRequest) error {
	path := fmt.Sprintf("/v1/collections/%s/%s:update", kind.Collection(), id)
	_, err := c.doRequest(ctx, http.MethodPatch, path, req)
	return err
}

// Count returns the number of documents matching the constraints
func (c *Client) Count(ctx context.Context, kind domain.Kind, constraints []domain.Constraint) (int, error) {
	filters, _ := mapConstraints(constraints)

	path := fmt.Sprintf("/v1/collections/%s:count", kind.Collection())
	body, err := c.doRequest(ctx, http.MethodPost, path, countRequest{Filters: filters})
	if err != nil {
		return 0, err
	}

	var resp countResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	return resp.Count, nil
}
