package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/notify"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Failed credential checks before lock
	LockDuration     time.Duration // How long to lock after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService implements the three-step login flow: credential check,
// OTP dispatch, OTP verification.
type AuthService struct {
	userRepo   identity.UserRepository
	menuRepo   identity.MenuRepository
	pending    identity.PendingLoginStore
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	dispatcher *notify.Dispatcher
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	menuRepo identity.MenuRepository,
	pending identity.PendingLoginStore,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	dispatcher *notify.Dispatcher,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		menuRepo:   menuRepo,
		pending:    pending,
		jwtService: jwtService,
		blacklist:  blacklist,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger,
	}
}

// Login validates credentials and opens the OTP window. On success the
// caller receives a pending reference; no bearer token is issued yet.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*PendingLoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("username", input.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", input.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	pending, err := identity.NewPendingLogin(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to create pending login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start verification")
	}
	if err := s.pending.Put(ctx, pending); err != nil {
		s.logger.Error("Failed to store pending login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start verification")
	}

	s.logger.Info("Credentials accepted, awaiting OTP",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &PendingLoginResult{
		Reference:   pending.Reference,
		MaskedEmail: maskEmail(user.Email),
		MaskedPhone: maskPhone(user.Phone),
		ExpiresIn:   int(identity.OtpTTL.Seconds()),
	}, nil
}

// SendOtp generates a code for a live pending login and dispatches it
// on the requested channel
func (s *AuthService) SendOtp(ctx context.Context, input SendOtpInput) error {
	channel, err := identity.ParseOtpChannel(input.Channel)
	if err != nil {
		return err
	}

	pending, err := s.pending.Find(ctx, input.Reference)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, pending.UserID)
	if err != nil {
		s.logger.Error("Pending login references missing user",
			zap.String("user_id", pending.UserID.String()))
		return shared.ErrSessionExpired
	}

	recipient := user.Email
	if channel == identity.OtpChannelSMS {
		if user.Phone == "" {
			return shared.NewDomainError("NO_PHONE_ON_FILE", "No phone number is registered for this account")
		}
		recipient = user.Phone
	}

	code, err := identity.GenerateOtpCode()
	if err != nil {
		s.logger.Error("Failed to generate OTP code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification code")
	}

	if err := pending.AttachCode(code, channel); err != nil {
		return err
	}
	if err := s.pending.Put(ctx, pending); err != nil {
		s.logger.Error("Failed to persist OTP code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to store verification code")
	}

	if err := s.dispatcher.Send(ctx, channel, notify.OtpMessage{
		Recipient: recipient,
		Username:  user.GetFullNameOrUsername(),
		Code:      code,
	}); err != nil {
		s.logger.Error("Failed to dispatch OTP",
			zap.String("channel", string(channel)), zap.Error(err))
		return shared.NewDomainError("OTP_DISPATCH_FAILED", "Failed to send verification code")
	}

	s.logger.Info("OTP dispatched",
		zap.String("username", pending.Username),
		zap.String("channel", string(channel)))
	return nil
}

// VerifyOtp checks the submitted code and completes the login: token
// pair, profile, and granted menus. The pending login is deleted on
// success.
func (s *AuthService) VerifyOtp(ctx context.Context, input VerifyOtpInput) (*LoginResult, error) {
	pending, err := s.pending.Find(ctx, input.Reference)
	if err != nil {
		return nil, err
	}

	if err := pending.Verify(input.Code); err != nil {
		// Persist the attempt counter so retries cannot be farmed by
		// re-reading the stored state
		if putErr := s.pending.Put(ctx, pending); putErr != nil {
			s.logger.Error("Failed to persist OTP attempt count", zap.Error(putErr))
		}
		s.logger.Warn("OTP verification failed",
			zap.String("username", pending.Username),
			zap.Int("attempts", pending.Attempts))
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, pending.UserID)
	if err != nil {
		return nil, shared.ErrSessionExpired
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	user.RecordLoginSuccess(input.ClientIP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login success", zap.Error(err))
	}

	rights, err := s.menuRepo.RightsForRole(ctx, user.RoleID)
	if err != nil {
		s.logger.Error("Failed to load menu rights", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load permissions")
	}
	for _, orphan := range identity.OrphanedRights(rights) {
		s.logger.Warn("Dropping menu entry with missing parent",
			zap.String("menu", orphan.Name),
			zap.String("menu_id", orphan.MenuID.String()))
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue session")
	}

	if err := s.pending.Delete(ctx, input.Reference); err != nil {
		s.logger.Error("Failed to delete pending login", zap.Error(err))
	}

	s.logger.Info("Login completed",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		Tokens: tokens,
		User:   ToUserDTO(user),
		Menus:  identity.BuildNavigationTree(rights),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.ErrSessionExpired
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate session")
	}
	if blacklisted {
		return nil, shared.ErrSessionExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrSessionExpired
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || !user.CanLogin() {
		return nil, shared.ErrSessionExpired
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
	if err != nil {
		s.logger.Error("Failed to check user invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate session")
	}
	if invalidated {
		return nil, shared.ErrSessionExpired
	}

	// Rotate: the used refresh token is revoked for its remaining life
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	return s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
	})
}

// Logout revokes the presented access token
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to end session")
	}
	s.logger.Info("Logout", zap.String("user_id", claims.UserID))
	return nil
}

// ChangePassword changes the caller's password and invalidates all of
// their outstanding tokens
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := user.ChangePassword(oldPassword, newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	// Outstanding sessions die with the old password
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.RefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to invalidate sessions after password change", zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}
