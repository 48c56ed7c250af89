package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"user-billing/internal/domain"
	"user-billing/internal/events"
	"user-billing/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("a user with this email already exists")
)

const (
	minPasswordLength  = 8
	maxPasswordBytes   = 72 // límite de bcrypt; más largo fallaría al hashear
	maxDisplayNameRune = 50
)

// UserService coordina reglas de negocio para el alta de usuarios.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	bus    *events.Bus
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, bus *events.Bus) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		bus:    bus,
	}
}

type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
}

// CreateUser valida el DTO, garantiza unicidad de email, persiste el usuario
// y publica user.created. El hash de la contraseña nunca sale de esta capa.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	displayName := strings.TrimSpace(input.DisplayName)

	// Validación defensiva: el binding del handler ya aplicó estas reglas.
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return domain.User{}, ErrInvalidInput
	}
	if displayName == "" || len([]rune(displayName)) > maxDisplayNameRune {
		return domain.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, ErrEmailTaken
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Email:        email,
		PasswordHash: string(hashBytes),
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return domain.User{}, err
	}

	s.bus.Publish(ctx, events.UserCreated, events.UserCreatedEvent{
		UserID: saved.ID,
		Email:  saved.Email,
	})

	return saved, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
