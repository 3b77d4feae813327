package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecotrack-service/internal/domain"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/errors"
	"github.com/ecotrack-service/internal/pkg/password"
	"github.com/ecotrack-service/internal/pkg/token"
	"github.com/ecotrack-service/internal/pkg/validator"
	"github.com/ecotrack-service/internal/usecase/dto"
	"go.uber.org/zap"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// AuthUseCase - регистрация, вход/выход и проверка сессий
type AuthUseCase struct {
	store    repository.Store
	tokens   *token.Manager
	cache    repository.CacheRepository
	activity ActivityRecorder
	logger   *zap.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(
	store repository.Store,
	tokens *token.Manager,
	cache repository.CacheRepository,
	activity ActivityRecorder,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		store:    store,
		tokens:   tokens,
		cache:    cache,
		activity: activity,
		logger:   logger,
	}
}

// Register создаёт пользователя с ролью public. Все ошибки валидации
// возвращаются вместе в списке errors.
func (uc *AuthUseCase) Register(ctx context.Context, req *dto.RegisterRequest, ip string) (*domain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	username := strings.TrimSpace(req.Username)
	plain := strings.TrimSpace(req.Password)
	confirm := strings.TrimSpace(req.ConfirmPassword)

	var problems []string
	if fullName == "" || username == "" || plain == "" || confirm == "" {
		problems = append(problems, "All fields are required")
	}
	if len(username) < minUsernameLength {
		problems = append(problems, "Username must be at least 3 characters")
	}
	if len(plain) < minPasswordLength {
		problems = append(problems, "Password must be at least 6 characters")
	}
	if plain != confirm {
		problems = append(problems, "Passwords do not match")
	}
	if username != "" {
		_, err := uc.store.Repos().Users.GetByUsername(ctx, username)
		switch {
		case err == nil:
			problems = append(problems, "Username already taken")
		case !errors.Is(err, errors.ErrNotFound):
			return nil, fmt.Errorf("check username: %w", err)
		}
	}
	if len(problems) > 0 {
		return nil, registrationError(problems)
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         domain.RolePublic,
		IsActive:     true,
	}
	if err := uc.store.WithinTx(ctx, func(tx repository.Repositories) error {
		return tx.Users.Create(ctx, user)
	}); err != nil {
		if errors.Is(err, errors.ErrDuplicate) {
			return nil, registrationError([]string{"Username already taken"})
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	uc.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", username))

	recordActivity(ctx, uc.activity, uc.logger, &user.ID, domain.ActionUserRegistration,
		fmt.Sprintf("New user %s registered", username), ip)

	return user, nil
}

// Login - вход обычного пользователя
func (uc *AuthUseCase) Login(ctx context.Context, req *dto.LoginRequest, ip string) (*dto.Session, error) {
	user, err := uc.checkCredentials(ctx, req)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.ErrAccountInactive
	}

	session, err := uc.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, uc.activity, uc.logger, &user.ID, domain.ActionUserLogin,
		fmt.Sprintf("User %s logged in", user.Username), ip)

	return session, nil
}

// AdminLogin - вход в админку. Non-admin attempts are logged.
func (uc *AuthUseCase) AdminLogin(ctx context.Context, req *dto.LoginRequest, ip string) (*dto.Session, error) {
	user, err := uc.checkCredentials(ctx, req)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		uc.logger.Warn("Non-admin user attempted admin login", zap.String("username", user.Username))
		recordActivity(ctx, uc.activity, uc.logger, &user.ID, domain.ActionFailedAdminLogin,
			fmt.Sprintf("Non-admin user %s attempted admin login", user.Username), ip)
		return nil, errors.ErrNotAdminAccount
	}
	if !user.IsActive {
		return nil, errors.ErrAccountInactive
	}

	session, err := uc.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, uc.activity, uc.logger, &user.ID, domain.ActionAdminLogin,
		fmt.Sprintf("Admin %s logged in", user.Username), ip)

	return session, nil
}

// Logout отзывает токен до конца его срока действия
func (uc *AuthUseCase) Logout(ctx context.Context, claims *token.Claims, ip string) error {
	if claims == nil {
		return nil
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := uc.cache.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	userID := claims.UserID
	recordActivity(ctx, uc.activity, uc.logger, &userID, domain.ActionUserLogout,
		fmt.Sprintf("User %s logged out", claims.Username), ip)

	return nil
}

// Authenticate turns a raw token into the caller's identity. The user row is
// reloaded so role changes and deactivation apply immediately.
func (uc *AuthUseCase) Authenticate(ctx context.Context, raw string) (*domain.Identity, *token.Claims, error) {
	claims, err := uc.tokens.Validate(raw)
	if err != nil {
		return nil, nil, errors.Unauthorized()
	}

	revoked, err := uc.cache.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, nil, errors.Unauthorized()
	}

	user, err := uc.store.Repos().Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil, errors.Unauthorized()
		}
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, errors.Unauthorized()
	}

	return user.Identity(), claims, nil
}

// Me возвращает профиль текущего пользователя
func (uc *AuthUseCase) Me(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, errors.Unauthorized()
	}
	user, err := uc.store.Repos().Users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// TokenTTL is the lifetime of issued sessions, used for the cookie.
func (uc *AuthUseCase) TokenTTL() time.Duration {
	return uc.tokens.TTL()
}

func (uc *AuthUseCase) checkCredentials(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := validator.Check(req); err != nil {
		return nil, errors.Validation("Username and password are required")
	}

	user, err := uc.store.Repos().Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrBadCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !password.Check(user.PasswordHash, req.Password) {
		return nil, errors.ErrBadCredentials
	}
	return user, nil
}

func (uc *AuthUseCase) openSession(ctx context.Context, user *domain.User) (*dto.Session, error) {
	signed, claims, err := uc.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.store.Repos().Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		uc.logger.Warn("Failed to update last login", zap.Int64("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	return &dto.Session{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

func registrationError(problems []string) error {
	return errors.Validation(problems[0]).WithErrors(problems)
}
