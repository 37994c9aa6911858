package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	pgrepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/postgres"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Company  string
	Role     models.Role
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users pgrepo.UserRepository
}

func NewAuthService(users pgrepo.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error) {
	const op = "AuthService.SignUp"

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "a valid email is required", nil)
	}
	if len(in.Password) < 8 {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "password must be at least 8 characters", nil)
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "full_name is required", nil)
	}
	if !in.Role.Valid() {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "role must be candidate or recruiter", nil)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Company:      strings.TrimSpace(in.Company),
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateEmail) {
			return nil, "", utils.E(utils.CodeConflict, op, "email already registered", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	token, err := utils.IssueToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.SignIn"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	token, err := utils.IssueToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Me"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}
