package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
)

var (
	ErrEmailTaken     = errors.New("email already in use")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrInvalidToken   = errors.New("invalid token")
)

// Identity is the identity-provider surface the API layer depends on:
// create an account, verify a password, mint and verify session tokens.
type Identity interface {
	CreateUser(ctx context.Context, email, password string) (uid string, err error)
	VerifyPassword(ctx context.Context, email, password string) (uid, verifiedEmail string, err error)
	MintToken(ctx context.Context, uid string) (string, error)
	VerifyToken(ctx context.Context, token string) (uid, email string, err error)
}

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseIdentity implements Identity with the Firebase Admin SDK.
// Password verification is not part of the Admin SDK, so it goes through the
// Identity Toolkit REST endpoint with the client web API key, exactly like
// the proxy this backend replaces.
type FirebaseIdentity struct {
	auth      *fbauth.Client
	apiKey    string
	signInURL string
	http      *http.Client
}

func NewFirebaseIdentity(authClient *fbauth.Client, apiKey string) *FirebaseIdentity {
	return &FirebaseIdentity{
		auth:      authClient,
		apiKey:    apiKey,
		signInURL: signInEndpoint,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *FirebaseIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(false)

	record, err := f.auth.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return record.UID, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (f *FirebaseIdentity) VerifyPassword(ctx context.Context, email, password string) (string, string, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("%s?key=%s", f.signInURL, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("identity toolkit request: %w", err)
	}
	defer resp.Body.Close()

	var parsed signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("identity toolkit response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// INVALID_LOGIN_CREDENTIALS, EMAIL_NOT_FOUND, INVALID_PASSWORD...
		// all collapse to one caller-facing failure.
		return "", "", ErrBadCredentials
	}

	return parsed.LocalID, parsed.Email, nil
}

// MintToken issues a custom token the client exchanges for an ID token.
func (f *FirebaseIdentity) MintToken(ctx context.Context, uid string) (string, error) {
	return f.auth.CustomToken(ctx, uid)
}

func (f *FirebaseIdentity) VerifyToken(ctx context.Context, token string) (string, string, error) {
	decoded, err := f.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	email, _ := decoded.Claims["email"].(string)
	return decoded.UID, email, nil
}
