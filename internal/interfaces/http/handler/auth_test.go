package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/jubilee-retail/backoffice/internal/application/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubUserRepository serves a single fixed user
type stubUserRepository struct {
	user *identity.User
}

func (s *stubUserRepository) Save(ctx context.Context, user *identity.User) error { return nil }
func (s *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, shared.ErrNotFound
}
func (s *stubUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, shared.ErrNotFound
}
func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return nil, shared.ErrNotFound
}
func (s *stubUserRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*identity.User], error) {
	return shared.Paginated[*identity.User]{}, nil
}
func (s *stubUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}
func (s *stubUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type stubRightsRepository struct {
	rights []identity.MenuRight
}

func (s *stubRightsRepository) Save(ctx context.Context, menu *identity.Menu) error { return nil }
func (s *stubRightsRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Menu, error) {
	return nil, shared.ErrNotFound
}
func (s *stubRightsRepository) FindAll(ctx context.Context) ([]*identity.Menu, error) {
	return nil, nil
}
func (s *stubRightsRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubRightsRepository) RightsForRole(ctx context.Context, roleID uuid.UUID) ([]identity.MenuRight, error) {
	return s.rights, nil
}
func (s *stubRightsRepository) ReplaceGrants(ctx context.Context, roleID uuid.UUID, grants []identity.RoleMenuGrant) error {
	return nil
}

// captureSender records the last dispatched code instead of sending it
type captureSender struct {
	channel identity.OtpChannel
	code    string
}

func (s *captureSender) Channel() identity.OtpChannel { return s.channel }
func (s *captureSender) Send(ctx context.Context, msg notify.OtpMessage) error {
	s.code = msg.Code
	return nil
}

func newLoginFlowEngine(t *testing.T) (*gin.Engine, *captureSender) {
	t.Helper()

	user, err := identity.NewUser("jdoe", "jdoe@example.com", "correct-horse-9", uuid.New())
	require.NoError(t, err)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
	})

	sender := &captureSender{channel: identity.OtpChannelEmail}
	userRepo := &stubUserRepository{user: user}
	menuRepo := &stubRightsRepository{rights: []identity.MenuRight{
		{MenuID: uuid.New(), Name: "Dashboard", URL: "/dashboard", CanView: true},
	}}

	authService := appidentity.NewAuthService(
		userRepo, menuRepo,
		auth.NewInMemoryPendingLoginStore(),
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		notify.NewDispatcher(sender),
		appidentity.DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
	menuService := appidentity.NewMenuService(menuRepo, nil, zap.NewNop())
	userService := appidentity.NewUserService(userRepo, nil, zap.NewNop())

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewAuthHandler(authService, userService, menuService, zap.NewNop()).RegisterRoutes(api)
	return engine, sender
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginFlow_Complete(t *testing.T) {
	engine, sender := newLoginFlowEngine(t)

	// Step 1: credentials
	w := postJSON(t, engine, "/api/v1/auth/login",
		`{"username":"jdoe","password":"correct-horse-9"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Success bool `json:"success"`
		Data    struct {
			Reference   string `json:"reference"`
			MaskedEmail string `json:"masked_email"`
			ExpiresIn   int    `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.True(t, loginResp.Success)
	require.NotEmpty(t, loginResp.Data.Reference)
	assert.Equal(t, 300, loginResp.Data.ExpiresIn)
	assert.NotContains(t, loginResp.Data.MaskedEmail, "jdoe@", "email is masked")

	// No token exists yet; step 2 dispatches the code
	w = postJSON(t, engine, "/api/v1/auth/otp/send", `{"channel":"email"}`,
		map[string]string{"X-Pending-Reference": loginResp.Data.Reference})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.code, 6)

	// Step 3: verification issues the token pair and the menu tree
	w = postJSON(t, engine, "/api/v1/auth/otp/verify",
		`{"reference":"`+loginResp.Data.Reference+`","code":"`+sender.code+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var verifyResp struct {
		Success bool `json:"success"`
		Data    struct {
			Tokens struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
				TokenType    string `json:"token_type"`
			} `json:"tokens"`
			User struct {
				Username string `json:"username"`
			} `json:"user"`
			Menus []json.RawMessage `json:"menus"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verifyResp))
	assert.NotEmpty(t, verifyResp.Data.Tokens.AccessToken)
	assert.NotEmpty(t, verifyResp.Data.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", verifyResp.Data.Tokens.TokenType)
	assert.Equal(t, "jdoe", verifyResp.Data.User.Username)
	assert.Len(t, verifyResp.Data.Menus, 1)

	// The pending reference is single use
	w = postJSON(t, engine, "/api/v1/auth/otp/verify",
		`{"reference":"`+loginResp.Data.Reference+`","code":"`+sender.code+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFlow_WrongPassword(t *testing.T) {
	engine, _ := newLoginFlowEngine(t)

	w := postJSON(t, engine, "/api/v1/auth/login",
		`{"username":"jdoe","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestLoginFlow_WrongCode(t *testing.T) {
	engine, sender := newLoginFlowEngine(t)

	w := postJSON(t, engine, "/api/v1/auth/login",
		`{"username":"jdoe","password":"correct-horse-9"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w = postJSON(t, engine, "/api/v1/auth/otp/send", `{"channel":"email"}`,
		map[string]string{"X-Pending-Reference": loginResp.Data.Reference})
	require.Equal(t, http.StatusOK, w.Code)

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}
	w = postJSON(t, engine, "/api/v1/auth/otp/verify",
		`{"reference":"`+loginResp.Data.Reference+`","code":"`+wrong+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "OTP_INVALID")
}

func TestLoginFlow_MissingReference(t *testing.T) {
	engine, _ := newLoginFlowEngine(t)

	w := postJSON(t, engine, "/api/v1/auth/otp/send", `{"channel":"email"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestLoginFlow_UnknownReference(t *testing.T) {
	engine, _ := newLoginFlowEngine(t)

	w := postJSON(t, engine, "/api/v1/auth/otp/verify",
		`{"reference":"nonexistent","code":"123456"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "OTP_EXPIRED")
}
