// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/lib/jwt"
	"github.com/magabrotheeeer/contentgen/internal/lib/password"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

var (
	// ErrInvalidCredentials неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists e-mail или имя пользователя уже заняты.
	ErrUserExists = errors.New("user already exists")
	// ErrAccountSuspended учётная запись заблокирована.
	ErrAccountSuspended = errors.New("account suspended")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя вместе с подпиской и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User, sub models.Subscription) (string, error)
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdatePassword сохраняет новый хэш пароля.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// Notifier создаёт уведомления пользователю.
type Notifier interface {
	Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	notifier Notifier
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, notifier Notifier, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		notifier: notifier,
		log:      log,
	}
}

// Register проверяет сложность пароля, создаёт пользователя с ролью "user" и бесплатной
// пробной подпиской, после чего отправляет приветственное уведомление.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	const op = "services.auth.Register"
	if err := password.Validate(rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	free, _ := models.LookupPlan(models.PlanFree)
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}
	sub := models.Subscription{
		Plan:     models.PlanFree,
		Status:   models.SubscriptionTrial,
		Credits:  free.Credits,
		RenewsAt: time.Now().UTC().AddDate(0, 1, 0),
	}
	id, err := s.users.RegisterUser(ctx, user, sub)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, _, err = s.notifier.Create(ctx, id, "Welcome",
		fmt.Sprintf("Welcome aboard, %s! You have %d free credits to start generating content.", username, free.Credits),
		models.NotificationSuccess)
	if err != nil {
		s.log.Warn("failed to create welcome notification", slog.String("user_id", id), sl.Err(err))
	}
	return id, nil
}

// Login проверяет пароль пользователя и выдаёт JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if user.Status == models.UserStatusSuspended {
		return "", nil, fmt.Errorf("%s: %w", op, ErrAccountSuspended)
	}
	if password.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, rawPassword)
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// rehash пересчитывает хеш с текущей стоимостью. Ошибка не мешает входу.
func (s *AuthService) rehash(ctx context.Context, userID, rawPassword string) {
	hashed, err := password.GetHash(rawPassword)
	if err == nil {
		err = s.users.UpdatePassword(ctx, userID, hashed)
	}
	if err != nil {
		s.log.Warn("failed to upgrade password hash", slog.String("user_id", userID), sl.Err(err))
	}
}

// ValidateToken проверяет JWT и возвращает его claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

// GetUser возвращает пользователя по идентификатору.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "services.auth.GetUser"
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ChangePassword меняет пароль после проверки текущего.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	const op = "services.auth.ChangePassword"
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.Validate(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EnsureAdmin создаёт администратора с бизнес-подпиской, если пароль задан и пользователя
// с таким именем ещё нет. Существующая учётная запись не изменяется.
// Возвращает true, если администратор был создан.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, username, rawPassword string) (bool, error) {
	const op = "services.auth.EnsureAdmin"
	if rawPassword == "" {
		s.log.Info("admin password is not set, skipping admin bootstrap")
		return false, nil
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Validate(rawPassword); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	business, _ := models.LookupPlan(models.PlanBusiness)
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
	}
	sub := models.Subscription{
		Plan:     models.PlanBusiness,
		Status:   models.SubscriptionActive,
		Credits:  business.Credits,
		RenewsAt: time.Now().UTC().AddDate(0, 1, 0),
	}
	id, err := s.users.RegisterUser(ctx, user, sub)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin account created", slog.String("user_id", id), slog.String("username", username))
	return true, nil
}
