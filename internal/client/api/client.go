package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/medisphere/care-service/internal/client/tokenstore"
)

// ErrNotAuthenticated means no valid token is available for a protected
// call; the caller should route the user to login.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client is the HTTP client for the care-service API. It persists issued
// tokens in the store and attaches them as bearer credentials.
type Client struct {
	baseURL string
	http    *http.Client
	store   *tokenstore.Store
}

// New builds a client for the given server.
func New(baseURL string, store *tokenstore.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Profile is the patient profile shape returned by the API.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type loginResponse struct {
	Data struct {
		Auth AuthResult `json:"auth"`
	} `json:"data"`
}

type profileResponse struct {
	Data Profile `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Login authenticates a patient and persists the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/patients/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var decoded loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if err := c.store.Save(decoded.Data.Auth.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &decoded.Data.Auth, nil
}

// Profile fetches the calling patient's profile with the stored token.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	req, err := c.authorizedRequest(ctx, http.MethodGet, "/api/profile")
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// the server disagrees with the local window; drop the token
		_ = c.store.Clear()
		return nil, ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var decoded profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &decoded.Data, nil
}

// Logout discards the stored token. The server keeps no session state,
// so no request is needed.
func (c *Client) Logout(_ context.Context) error {
	return c.store.Clear()
}

// HasSession reports whether a locally valid token exists.
func (c *Client) HasSession() bool {
	_, err := c.store.Load()
	return err == nil
}

func (c *Client) authorizedRequest(ctx context.Context, method, path string) (*http.Request, error) {
	token, err := c.store.Load()
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func apiError(resp *http.Response) error {
	var decoded errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Error.Message != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, decoded.Error.Message)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
