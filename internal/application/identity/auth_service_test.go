package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*identity.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*identity.User]), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockMenuRepository is a mock implementation of identity.MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) Save(ctx context.Context, menu *identity.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Menu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Menu), args.Error(1)
}

func (m *MockMenuRepository) FindAll(ctx context.Context) ([]*identity.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Menu), args.Error(1)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuRepository) RightsForRole(ctx context.Context, roleID uuid.UUID) ([]identity.MenuRight, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.MenuRight), args.Error(1)
}

func (m *MockMenuRepository) ReplaceGrants(ctx context.Context, roleID uuid.UUID, grants []identity.RoleMenuGrant) error {
	args := m.Called(ctx, roleID, grants)
	return args.Error(0)
}

// captureSender records dispatched codes instead of sending them
type captureSender struct {
	channel identity.OtpChannel
	last    notify.OtpMessage
	sent    int
}

func (c *captureSender) Channel() identity.OtpChannel { return c.channel }

func (c *captureSender) Send(ctx context.Context, msg notify.OtpMessage) error {
	c.last = msg
	c.sent++
	return nil
}

type authFixture struct {
	service  *AuthService
	userRepo *MockUserRepository
	menuRepo *MockMenuRepository
	pending  identity.PendingLoginStore
	email    *captureSender
	user     *identity.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := new(MockUserRepository)
	menuRepo := new(MockMenuRepository)
	pending := newTestPendingStore()
	email := &captureSender{channel: identity.OtpChannelEmail}
	sms := &captureSender{channel: identity.OtpChannelSMS}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "test",
	})

	user, err := identity.NewUser("jdoe", "jdoe@example.com", "secret123", uuid.New())
	require.NoError(t, err)
	require.NoError(t, user.SetPhone("03001234567"))

	service := NewAuthService(
		userRepo, menuRepo, pending, jwtService,
		auth.NewInMemoryTokenBlacklist(),
		notify.NewDispatcher(email, sms),
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)

	return &authFixture{
		service:  service,
		userRepo: userRepo,
		menuRepo: menuRepo,
		pending:  pending,
		email:    email,
		user:     user,
	}
}

// testPendingStore is a map-backed store without TTL handling; expiry
// cases are exercised through the infrastructure store's own tests.
type testPendingStore struct {
	entries map[string]*identity.PendingLogin
}

func newTestPendingStore() *testPendingStore {
	return &testPendingStore{entries: make(map[string]*identity.PendingLogin)}
}

func (s *testPendingStore) Put(ctx context.Context, login *identity.PendingLogin) error {
	copied := *login
	s.entries[login.Reference] = &copied
	return nil
}

func (s *testPendingStore) Find(ctx context.Context, reference string) (*identity.PendingLogin, error) {
	login, ok := s.entries[reference]
	if !ok {
		return nil, shared.ErrOtpExpired
	}
	copied := *login
	return &copied, nil
}

func (s *testPendingStore) Delete(ctx context.Context, reference string) error {
	delete(s.entries, reference)
	return nil
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(f.user, nil)
	f.userRepo.On("Save", mock.Anything, f.user).Return(nil)

	_, err := f.service.Login(context.Background(), LoginInput{Username: "jdoe", Password: "wrong"})
	require.Error(t, err)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	assert.Equal(t, 1, f.user.FailedAttempts)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := f.service.Login(context.Background(), LoginInput{Username: "ghost", Password: "x"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	// Unknown user and wrong password are indistinguishable to the caller
	assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
}

func TestAuthService_Login_LocksAfterMaxAttempts(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(f.user, nil)
	f.userRepo.On("Save", mock.Anything, f.user).Return(nil)

	var lastErr error
	for i := 0; i < DefaultAuthServiceConfig().MaxLoginAttempts; i++ {
		_, lastErr = f.service.Login(context.Background(), LoginInput{Username: "jdoe", Password: "wrong"})
	}
	var de *shared.DomainError
	require.ErrorAs(t, lastErr, &de)
	assert.Equal(t, "ACCOUNT_LOCKED", de.Code)
	assert.True(t, f.user.IsLocked())
}

func TestAuthService_Login_NoTokenBeforeVerification(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(f.user, nil)

	result, err := f.service.Login(context.Background(), LoginInput{Username: "jdoe", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, 300, result.ExpiresIn)
	assert.Equal(t, "j**e@example.com", result.MaskedEmail)
	assert.Equal(t, "*********67", result.MaskedPhone)
}

func TestAuthService_FullLoginFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	roleID := f.user.RoleID

	rights := []identity.MenuRight{
		{MenuID: uuid.New(), Name: "Dashboard", URL: "/dashboard", SortOrder: 0, CanView: true},
		{MenuID: uuid.New(), Name: "Agents", URL: "/agents", SortOrder: 1, CanView: true, CanCreate: true},
	}

	f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(f.user, nil)
	f.userRepo.On("FindByID", mock.Anything, f.user.ID).Return(f.user, nil)
	f.userRepo.On("Save", mock.Anything, f.user).Return(nil)
	f.menuRepo.On("RightsForRole", mock.Anything, roleID).Return(rights, nil)

	// Step 1: credentials
	pending, err := f.service.Login(ctx, LoginInput{Username: "jdoe", Password: "secret123"})
	require.NoError(t, err)

	// Step 2: dispatch
	require.NoError(t, f.service.SendOtp(ctx, SendOtpInput{Reference: pending.Reference, Channel: "email"}))
	assert.Equal(t, 1, f.email.sent)
	assert.Equal(t, "jdoe@example.com", f.email.last.Recipient)
	require.Regexp(t, `^[0-9]{6}$`, f.email.last.Code)

	// Step 3: verification
	result, err := f.service.VerifyOtp(ctx, VerifyOtpInput{
		Reference: pending.Reference,
		Code:      f.email.last.Code,
		ClientIP:  "10.0.0.1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "jdoe", result.User.Username)
	require.Len(t, result.Menus, 2)
	assert.Equal(t, "Dashboard", result.Menus[0].Name)

	// The pending login is consumed
	_, err = f.service.VerifyOtp(ctx, VerifyOtpInput{Reference: pending.Reference, Code: f.email.last.Code})
	assert.ErrorIs(t, err, shared.ErrOtpExpired)
}

func TestAuthService_SendOtp_UnknownReference(t *testing.T) {
	f := newAuthFixture(t)
	err := f.service.SendOtp(context.Background(), SendOtpInput{Reference: "gone", Channel: "email"})
	assert.ErrorIs(t, err, shared.ErrOtpExpired)
}

func TestAuthService_SendOtp_InvalidChannel(t *testing.T) {
	f := newAuthFixture(t)
	err := f.service.SendOtp(context.Background(), SendOtpInput{Reference: "x", Channel: "fax"})
	assert.Error(t, err)
}

func TestAuthService_VerifyOtp_WrongCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(f.user, nil)
	f.userRepo.On("FindByID", mock.Anything, f.user.ID).Return(f.user, nil)

	pending, err := f.service.Login(ctx, LoginInput{Username: "jdoe", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, f.service.SendOtp(ctx, SendOtpInput{Reference: pending.Reference, Channel: "email"}))

	wrong := "000000"
	if f.email.last.Code == wrong {
		wrong = "000001"
	}
	_, err = f.service.VerifyOtp(ctx, VerifyOtpInput{Reference: pending.Reference, Code: wrong})
	assert.ErrorIs(t, err, shared.ErrOtpInvalid)

	// Attempt counter survives across calls
	stored, err := f.pending.Find(ctx, pending.Reference)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Attempts)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
	})
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: f.user.ID, Username: "jdoe", RoleID: f.user.RoleID,
	})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, claims))

	blacklisted, err := f.service.blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}
