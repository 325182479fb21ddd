package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the contract of the hosted auth backend. The backend itself
// is an external collaborator; this package only wraps its REST surface.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, name string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthError is a failure reported by the auth service. Code is the
// service's machine-readable error identifier; the presentation layer maps
// it to a localized message.
type AuthError struct {
	Code    string
	Message string
	Status  int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth service: %s (%s)", e.Message, e.Code)
}

// ErrInvalidCredentials is the code the service reports for a wrong
// email/password pair.
const ErrInvalidCredentials = "invalid_credentials"

// Client talks to the hosted auth service over its REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client for the given service base URL and public API
// key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Metadata struct {
			Name string `json:"name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

type errorResponse struct {
	Code    string `json:"error_code"`
	Message string `json:"msg"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.tokenRequest(ctx, "/auth/v1/token?grant_type=password", body)
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name},
	}
	return c.tokenRequest(ctx, "/auth/v1/signup", body)
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}
	return nil
}

func (c *Client) tokenRequest(ctx context.Context, path string, body any) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, c.decodeError(resp)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("auth service returned no access token")
	}

	return &Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		UserID:       token.User.ID,
		Email:        token.User.Email,
		Name:         token.User.Metadata.Name,
		ExpiresAt:    time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
}

func (c *Client) decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return &AuthError{
			Code:    "unexpected_response",
			Message: fmt.Sprintf("status %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}
	return &AuthError{Code: body.Code, Message: body.Message, Status: resp.StatusCode}
}
