package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirestage/hirestage/internal/auth"
	"github.com/hirestage/hirestage/internal/models"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/utils"
)

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Role        models.UserRole
	Phone       string
	Skills      []string
	LinkedinURL string
}

type AuthService interface {
	// Register creates the user and issues a token; both succeed or
	// neither does.
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	// Login verifies credentials; if role is non-empty it must match the
	// stored role exactly.
	Login(ctx context.Context, email, password string, role models.UserRole) (*models.User, string, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, u *models.User) (*models.User, error)
}

type authService struct {
	users      pgrepo.UserRepository
	activities ActivityService
	secret     []byte
	tokenTTL   time.Duration
}

func NewAuthService(users pgrepo.UserRepository, activities ActivityService, secret []byte, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{users: users, activities: activities, secret: secret, tokenTTL: tokenTTL}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	const op = "AuthService.Register"

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email, password, and name are required", nil)
	}
	if len(in.Password) < 6 {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "password must be at least 6 characters", nil)
	}
	if in.Role == "" {
		in.Role = models.RoleCandidate
	}
	if !in.Role.Valid() {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "role must be candidate or admin", nil)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", utils.E(utils.CodeConflict, op, "user already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to check existing user", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		Phone:        in.Phone,
		Skills:       in.Skills,
		LinkedinURL:  in.LinkedinURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	token, err := auth.IssueToken(s.secret, u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}

	_ = s.activities.Record(ctx, u.ID, models.ActivityUserRegistration,
		fmt.Sprintf("User registered with role: %s", u.Role))

	return u, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string, role models.UserRole) (*models.User, string, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	if utils.CheckPassword(u.PasswordHash, password) != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	// A candidate cannot log in through the admin door and vice versa.
	if role != "" && u.Role != role {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid role", nil)
	}

	token, err := auth.IssueToken(s.secret, u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}

	_ = s.activities.Record(ctx, u.ID, models.ActivityUserLogin,
		fmt.Sprintf("User logged in as %s", u.Role))

	return u, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.GetProfile"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, u *models.User) (*models.User, error) {
	const op = "AuthService.UpdateProfile"

	if u == nil || u.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user is required", nil)
	}

	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}

	_ = s.activities.Record(ctx, u.ID, models.ActivityProfileUpdate, "User profile updated")

	return u, nil
}
