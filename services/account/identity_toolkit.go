package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hoardify/models"
)

// DefaultIdentityToolkitURL is the password sign-in endpoint of Firebase Auth.
const DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// IdentityToolkit verifies passwords through the Firebase Auth REST API, which the
// Admin SDK does not expose.
type IdentityToolkit struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

// NewIdentityToolkit returns a verifier using the project's web API key.
func NewIdentityToolkit(apiKey string) *IdentityToolkit {
	return &IdentityToolkit{
		APIKey:     apiKey,
		Endpoint:   DefaultIdentityToolkitURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// VerifyPassword returns models.ErrUnauthorized when the pair is rejected.
func (t *IdentityToolkit) VerifyPassword(ctx context.Context, email, password string) error {
	if t.APIKey == "" {
		return fmt.Errorf("identity toolkit: FIREBASE_WEB_API_KEY is not configured")
	}
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint+"?key="+t.APIKey, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("identity toolkit: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var e signInError
	_ = json.NewDecoder(resp.Body).Decode(&e)
	msg := e.Error.Message
	switch {
	case strings.HasPrefix(msg, "INVALID_PASSWORD"), strings.HasPrefix(msg, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(msg, "EMAIL_NOT_FOUND"):
		return fmt.Errorf("%w: current password is incorrect", models.ErrUnauthorized)
	case strings.HasPrefix(msg, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return fmt.Errorf("%w: too many attempts, try again later", models.ErrUnauthorized)
	}
	return fmt.Errorf("identity toolkit: unexpected status %d: %s", resp.StatusCode, msg)
}
