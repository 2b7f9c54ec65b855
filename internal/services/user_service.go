package services

import (
	"context"
	"errors"

	"rentflow-backend/internal/auth"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Signup creates the first user of an org as admin and returns a token.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}
	if req.OrgID <= 0 {
		return nil, errors.New("org_id is required")
	}

	existing, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		OrgID:        req.OrgID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, errors.New("invalid email or password")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return nil, errors.New("account is disabled")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// CreateUser adds a user to the caller's org with an explicit role.
func (s *UserService) CreateUser(ctx context.Context, orgID int64, req *models.CreateUserRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleAccountant:
	default:
		return nil, errors.New("role must be admin, manager, or accountant")
	}

	existing, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		OrgID:        orgID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, orgID, id int64) (*models.User, error) {
	return s.Repo.GetByID(ctx, orgID, id)
}

func (s *UserService) ListUsers(ctx context.Context, orgID int64) ([]*models.User, error) {
	return s.Repo.List(ctx, orgID)
}

func (s *UserService) UpdateRole(ctx context.Context, orgID, id int64, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleAccountant:
	default:
		return errors.New("role must be admin, manager, or accountant")
	}
	return s.Repo.UpdateRole(ctx, orgID, id, role)
}

func (s *UserService) SetActive(ctx context.Context, orgID, id int64, active bool) error {
	return s.Repo.SetActive(ctx, orgID, id, active)
}
