package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

const (
	defaultStateTTL    = 5 * time.Minute
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleSubjectScope = "google:"
)

// UserUpserter records the signed-in user.
type UserUpserter interface {
	UpsertFromAuth(ctx context.Context, user users.User) error
}

// TokenIssuer is satisfied by *sharedauth.Signer.
type TokenIssuer interface {
	Sign(claims sharedauth.Claims) (string, error)
}

// GoogleConfig holds the OAuth client settings and the session token issuer.
type GoogleConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	UIRedirectURL string
	Tokens        TokenIssuer
}

// GoogleService handles Google OAuth flows.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	stateTTL    time.Duration
	states      StateStore
	users       UserUpserter
	tokens      TokenIssuer
	userInfoURL string
}

// NewGoogleService builds a GoogleService. A nil state store falls back to
// process memory.
func NewGoogleService(cfg GoogleConfig, states StateStore, upserter UserUpserter) *GoogleService {
	if states == nil {
		states = NewMemoryStateStore()
	}
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:  cfg.UIRedirectURL,
		stateTTL:    defaultStateTTL,
		states:      states,
		users:       upserter,
		tokens:      cfg.Tokens,
		userInfoURL: googleUserInfoURL,
	}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != "" && s.tokens != nil
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	state := uuid.NewString()
	if err := s.states.Put(c.Request.Context(), state, s.stateTTL); err != nil {
		respond.Internal(c, err, "failed to start login")
		return
	}
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// loginError carries the HTTP answer for a failed callback step.
type loginError struct {
	status  int
	code    string
	message string
	cause   error
}

func (e *loginError) Error() string { return e.message }
func (e *loginError) Unwrap() error { return e.cause }

func badRequest(message string, cause error) *loginError {
	return &loginError{http.StatusBadRequest, "invalid_request", message, cause}
}

func (s *GoogleService) callback(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	redirect, err := s.completeLogin(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		var le *loginError
		if !errors.As(err, &le) {
			respond.Internal(c, err, "login failed")
			return
		}
		if le.cause != nil {
			_ = c.Error(le.cause)
		}
		respond.Error(c, le.status, le.code, le.message, nil)
		return
	}
	c.Redirect(http.StatusFound, redirect)
}

// completeLogin checks the one-time state, trades code for a Google profile,
// records the user and returns the UI URL carrying a session token.
func (s *GoogleService) completeLogin(ctx context.Context, state, code string) (string, error) {
	if state == "" || code == "" {
		return "", badRequest("missing state or code", nil)
	}
	switch ok, err := s.states.Consume(ctx, state); {
	case err != nil:
		return "", &loginError{http.StatusInternalServerError, "internal_error", "failed to verify state", err}
	case !ok:
		return "", badRequest("invalid or expired state", nil)
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", badRequest("failed to exchange code", err)
	}
	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return "", &loginError{http.StatusBadGateway, "auth_failed", "failed to fetch user profile", err}
	}

	user := profile.user()
	if s.users != nil {
		if err := s.users.UpsertFromAuth(ctx, user); err != nil {
			return "", &loginError{http.StatusInternalServerError, "internal_error", "failed to save user", err}
		}
	}

	claims := sharedauth.Claims{Email: user.Email, Name: user.Name, Picture: user.PictureURL}
	claims.Subject = user.ID
	signed, err := s.tokens.Sign(claims)
	if err != nil {
		return "", &loginError{http.StatusInternalServerError, "internal_error", "failed to issue token", err}
	}
	redirect, err := appendToken(s.uiRedirect, signed)
	if err != nil {
		return "", &loginError{http.StatusInternalServerError, "internal_error", "failed to redirect", err}
	}
	telemetry.Info("auth.login", map[string]any{"user_id": user.ID})
	return redirect, nil
}

// googleProfile is the v2 userinfo payload. v2 names the subject "id"; the
// OpenID endpoint calls it "sub".
type googleProfile struct {
	ID            string `json:"id"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	VerifiedEmail *bool  `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (p googleProfile) subject() string {
	if p.Sub != "" {
		return p.Sub
	}
	return p.ID
}

func (p googleProfile) user() users.User {
	return users.User{
		ID:         googleSubjectScope + p.subject(),
		Email:      p.Email,
		Name:       p.Name,
		PictureURL: p.Picture,
	}
}

var errUnverifiedEmail = errors.New("google account email is not verified")

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	resp, err := s.oauthConfig.Client(ctx, token).Get(s.userInfoURL)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}

	var p googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return googleProfile{}, fmt.Errorf("userinfo: %w", err)
	}
	if p.subject() == "" {
		return googleProfile{}, errors.New("userinfo: missing subject")
	}
	if p.VerifiedEmail != nil && !*p.VerifiedEmail {
		return googleProfile{}, errUnverifiedEmail
	}
	return p, nil
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
