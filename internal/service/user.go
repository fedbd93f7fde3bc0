package service

import (
	"context"
	"errors"
	"time"

	"PassVault/internal/mailer"
	"PassVault/internal/model"
	"PassVault/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// resetTokenTTL — срок жизни токена восстановления пароля.
const resetTokenTTL = 30 * time.Minute

var (
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrBadResetToken — токен восстановления неизвестен, истёк или уже использован.
	ErrBadResetToken = errors.New("reset token is invalid, expired or already used")
)

// UserService инкапсулирует бизнес-логику учётных записей:
// регистрация, вход, восстановление пароля.
type UserService struct {
	users  repo.UserRepository
	resets repo.ResetTokenRepository
	mail   *mailer.Mailer
	logger *zap.SugaredLogger
}

func NewUserService(users repo.UserRepository, resets repo.ResetTokenRepository, mail *mailer.Mailer, logger *zap.SugaredLogger) *UserService {
	return &UserService{users: users, resets: resets, mail: mail, logger: logger}
}

// Register создаёт учётную запись и возвращает её. Пароль хешируется bcrypt.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.CreateUser(ctx, &model.User{Email: email, Password: string(hash)})
}

// Login проверяет пару email/пароль и возвращает пользователя.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID возвращает пользователя по идентификатору (whoami).
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// RequestReset создаёт одноразовый токен восстановления и отправляет его почтой.
// Для неизвестного email ничего не делает и НЕ возвращает ошибку:
// ответ не должен раскрывать, существует ли учётная запись.
func (s *UserService) RequestReset(ctx context.Context, email string) error {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Infow("reset requested for unknown email", "email", email)
			return nil
		}
		return err
	}

	token := &model.ResetToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return err
	}

	// ошибка почты не фатальна для запроса: токен создан, письмо можно запросить снова
	if err := s.mail.SendResetToken(u.Email, token.ID); err != nil {
		s.logger.Errorw("failed to send reset email", "email", u.Email, "error", err)
	}
	return nil
}

// ConfirmReset меняет пароль по одноразовому токену.
func (s *UserService) ConfirmReset(ctx context.Context, tokenID, newPassword string) error {
	t, err := s.resets.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadResetToken
		}
		return err
	}
	if t.Used || time.Now().UTC().After(t.ExpiresAt) {
		return ErrBadResetToken
	}

	// помечаем использованным до смены пароля: повторное применение должно отбиться
	if err := s.resets.MarkUsed(ctx, t.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, t.UserID, string(hash))
}
