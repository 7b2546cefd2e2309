// Package auth implements the identity-provider client: email/password
// sign-in and custom-claims extraction from the returned ID token.
package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rsilveira/licoes/internal/domain"
)

const authTimeout = 30 * time.Second

// Client implements domain.IdentityProvider against the identity
// provider's REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new identity client
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: authTimeout,
		},
		logger: logger,
	}
}

// signInRequest is the body for the password sign-in endpoint
type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// signInResponse is the sign-in result envelope
type signInResponse struct {
	LocalID     string `json:"localId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	IDToken     string `json:"idToken"`
}

// SignIn exchanges credentials for an identity. Custom claims (subscription
// tier, admin flag) are read from the ID token payload.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	reqBody, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:signInWithPassword?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("sign-in request failed", "error", err)
		return nil, domain.ErrBackendUnreachable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("sign-in error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("sign-in failed with status %d", resp.StatusCode)
	}

	var signIn signInResponse
	if err := json.Unmarshal(respBody, &signIn); err != nil {
		return nil, fmt.Errorf("failed to parse sign-in response: %w", err)
	}

	claims, err := DecodeClaims(signIn.IDToken)
	if err != nil {
		// A token without readable claims still signs in; the user is
		// simply treated as free tier until the backend says otherwise.
		c.logger.Warn("failed to decode token claims", "error", err)
	}

	c.logger.Info("signed in", "uid", signIn.LocalID, "status", claims.Status)

	return &domain.User{
		UID:    signIn.LocalID,
		Name:   signIn.DisplayName,
		Email:  signIn.Email,
		Token:  signIn.IDToken,
		Claims: claims,
	}, nil
}

// tokenPayload is the claims subset read from the ID token
type tokenPayload struct {
	Status  string `json:"status"`
	IsAdmin bool   `json:"isAdmin"`
}

// DecodeClaims extracts the custom claims from a JWT payload without
// verifying the signature. The client is not the verifier: every request
// carries the token and the backend rejects forgeries, so claims here
// drive rendering decisions (premium lock, admin entries) only.
func DecodeClaims(idToken string) (domain.Claims, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return domain.Claims{}, fmt.Errorf("malformed token: expected 3 segments, got %d", len(parts))
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return domain.Claims{}, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Claims{}, fmt.Errorf("failed to parse token payload: %w", err)
	}

	return domain.Claims{
		Status: payload.Status,
		Admin:  payload.IsAdmin,
	}, nil
}
