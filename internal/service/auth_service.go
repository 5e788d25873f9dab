package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Deepak-Mahanta/Votify/internal/auth"
	"github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/model"
	"github.com/Deepak-Mahanta/Votify/internal/repository"
)

const bcryptCost = 10

// SignupParams carries validated signup input.
type SignupParams struct {
	Name         string
	Age          int
	Email        string
	Mobile       string
	Address      string
	AadharNumber string
	Password     string
	Role         model.Role
}

// AuthService handles registration, login, and profile operations.
type AuthService interface {
	Signup(ctx context.Context, params SignupParams) (*model.User, error)
	Login(ctx context.Context, aadharNumber, password string) (token string, user *model.User, err error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup registers a new user with a hashed password. At most one admin
// account may exist; duplicate Aadhar numbers are rejected.
func (s *authService) Signup(ctx context.Context, params SignupParams) (*model.User, error) {
	existing, err := s.userRepo.FindByAadhar(ctx, params.AadharNumber)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.WrapStorage(fmt.Errorf("check user existence: %w", err))
	}

	if params.Role == model.RoleAdmin {
		adminExists, err := s.userRepo.AdminExists(ctx)
		if err != nil {
			return nil, errors.WrapStorage(fmt.Errorf("check admin existence: %w", err))
		}
		if adminExists {
			return nil, errors.ErrAdminExists
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         params.Name,
		Age:          params.Age,
		Email:        params.Email,
		Mobile:       params.Mobile,
		Address:      params.Address,
		AadharNumber: params.AadharNumber,
		PasswordHash: string(hashedPassword),
		Role:         params.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.WrapStorage(fmt.Errorf("create user: %w", err))
	}

	return user, nil
}

// Login authenticates a user and issues a signed identity token. Unknown
// Aadhar numbers and wrong passwords fail identically. Read-only against
// storage.
func (s *authService) Login(ctx context.Context, aadharNumber, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByAadhar(ctx, aadharNumber)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, errors.WrapStorage(fmt.Errorf("find user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.AadharNumber, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// Profile returns the full user record for the authenticated caller.
func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.WrapStorage(fmt.Errorf("find user: %w", err))
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return errors.WrapStorage(fmt.Errorf("find user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return errors.WrapStorage(fmt.Errorf("update password: %w", err))
	}
	return nil
}
