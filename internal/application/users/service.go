package users

import (
	"context"
	"errors"
	"fmt"

	"speedlist-backend/internal/domain"
	"speedlist-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail       = errors.New("A valid email is required")
	ErrWeakPassword       = errors.New("Password must be at least 8 characters with a letter, a number and a special character")
	ErrEmailTaken         = errors.New("Email is already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrBadVerifyCode      = errors.New("Invalid verification code")
	ErrNotFound           = errors.New("User not found")
)

// Service encapsulates account operations.
type Service struct {
	DB *gorm.DB
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates an unverified account and returns it together with the
// verification code the caller delivers out of band.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if !validation.IsValidEmail(in.Email) {
		return nil, "", ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, "", ErrWeakPassword
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	code := uuid.New().String()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Verified:     false,
		VerifyCode:   code,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", err
	}
	return user, code, nil
}

// Login checks credentials and returns the account.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Verify marks the account verified when the code matches.
func (s *Service) Verify(ctx context.Context, email, code string) (*domain.User, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Verified {
		return &user, nil
	}
	if code == "" || user.VerifyCode != code {
		return nil, ErrBadVerifyCode
	}
	updates := map[string]any{"verified": true, "verify_code": ""}
	if err := s.DB.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.Verified = true
	user.VerifyCode = ""
	return &user, nil
}
