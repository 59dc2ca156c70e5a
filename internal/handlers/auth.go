package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"golang.org/x/oauth2"

	"notiguard/internal/config"
	"notiguard/internal/middleware"
	"notiguard/internal/models"
)

// EmployeeUpserter records employees signing in.
type EmployeeUpserter interface {
	UpsertEmployee(ctx context.Context, e *models.Employee) error
}

// AuthHandler handles OIDC authentication flows.
type AuthHandler struct {
	provider     *oidc.Provider
	oauth2Config oauth2.Config
	verifier     *oidc.IDTokenVerifier
	db           EmployeeUpserter
	cfg          *config.Config
}

// NewAuthHandler creates a new auth handler with OIDC configuration.
func NewAuthHandler(ctx context.Context, cfg *config.Config, store EmployeeUpserter) (*AuthHandler, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, err
	}

	oauth2Config := oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	return &AuthHandler{
		provider:     provider,
		oauth2Config: oauth2Config,
		verifier:     verifier,
		db:           store,
		cfg:          cfg,
	}, nil
}

// Login initiates the OIDC login flow.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	state := generateState()

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set("oauth_state", state)

	url := h.oauth2Config.AuthCodeURL(state)
	return c.Redirect().To(url)
}

// Callback handles the OIDC callback after authentication.
func (h *AuthHandler) Callback(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	// Verify state
	savedState := sess.Get("oauth_state")
	if savedState == nil || savedState.(string) != c.Query("state") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid state")
	}
	sess.Delete("oauth_state")

	oauth2Token, err := h.oauth2Config.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to exchange code")
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing id_token")
	}

	idToken, err := h.verifier.Verify(c.Context(), rawIDToken)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id_token")
	}

	claimsMap := make(map[string]any)
	if err := idToken.Claims(&claimsMap); err != nil {
		return err
	}

	// Some providers only put department and team claims on userinfo
	userInfo, err := h.provider.UserInfo(c.Context(), oauth2.StaticTokenSource(oauth2Token))
	if err == nil {
		var userInfoClaims map[string]any
		if err := userInfo.Claims(&userInfoClaims); err == nil {
			for k, v := range userInfoClaims {
				claimsMap[k] = v
			}
		}
	} else {
		log.Printf("Warning: Failed to fetch userinfo: %v", err)
	}

	if h.cfg.IsDev() {
		log.Printf("OIDC claims received: %v", claimsMap)
	}

	employee := employeeFromClaims(claimsMap, h.cfg)
	if employee.EmployeeID == "" {
		return fiber.NewError(fiber.StatusForbidden, "employee id claim missing")
	}
	if err := h.db.UpsertEmployee(c.Context(), employee); err != nil {
		return err
	}

	sess.Set(middleware.SessionKey, employee.EmployeeID)

	redirectURL := "/"
	if savedRedirect := sess.Get("redirect_after_login"); savedRedirect != nil {
		if url, ok := savedRedirect.(string); ok && strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//") {
			redirectURL = url
		}
		sess.Delete("redirect_after_login")
	}

	return c.Redirect().To(redirectURL)
}

// Logout clears the employee session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess != nil {
		sess.Destroy()
	}
	return c.Redirect().To("/login")
}

// employeeFromClaims maps OIDC claims onto an employee. The role is only set
// for ADMIN_IDS so a stored role is otherwise kept.
func employeeFromClaims(claims map[string]any, cfg *config.Config) *models.Employee {
	sub := claimString(claims, "sub")

	id := claimString(claims, cfg.OIDCEmployeeIDClaim)
	if id == "" {
		id = sub
	}

	e := &models.Employee{
		EmployeeID: id,
		Sub:        sub,
		Name:       claimString(claims, "name"),
		Email:      claimString(claims, "email"),
		Department: claimString(claims, cfg.OIDCDepartmentClaim),
		Team:       claimString(claims, cfg.OIDCTeamClaim),
	}
	if cfg.IsAdminID(id) {
		e.Role = models.RoleAdmin
	}
	return e
}

// claimString reads a string claim, taking the first element of arrays.
func claimString(claims map[string]any, key string) string {
	if key == "" {
		return ""
	}
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		if len(v) > 0 {
			s, _ := v[0].(string)
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
