package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agenticWallet/domain"
	redisrepo "agenticWallet/internal/repository/redis"
	"agenticWallet/pkg/logger"
	"agenticWallet/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// SessionRepository contract interface
type SessionRepository interface {
	StoreSession(ctx context.Context, data redisrepo.SessionData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (uint, error)
	DeleteSession(ctx context.Context, userID uint, token string) error
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	sessionTTL = 24 * time.Hour
)

type userService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	validate    *validator.Validate
}

func NewUserService(userRepo UserRepository, sessionRepo SessionRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		validate:    validate,
	}
}

func (s *userService) Signup(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already registered")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	goal := user.DefaultGoal
	if !domain.ValidGoal(goal) {
		goal = domain.GoalBalanced
	}

	newUser := domain.User{
		FullName:    user.FullName,
		Email:       user.Email,
		Password:    string(passwordHash),
		Phone:       user.Phone,
		Role:        RoleCustomer,
		DefaultGoal: goal,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	logger.Info("New user created", "user_id", newUser.ID, "email", newUser.Email)

	return newUser, nil
}

func (s *userService) Signin(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", domain.User{}, errors.New("invalid email format")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if err := utils.CheckPassword(user.Password, password); err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, sessionTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to sign in")
	}

	now := time.Now()
	session := redisrepo.SessionData{
		UserID:    user.ID,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(sessionTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := s.sessionRepo.StoreSession(ctx, session, sessionTTL); err != nil {
		logger.Error("Failed to store session", err)
		return "", domain.User{}, errors.New("failed to sign in")
	}

	logger.Info("User signed in", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (uint, error) {
	return s.sessionRepo.ValidateToken(ctx, token)
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if err := s.sessionRepo.DeleteSession(ctx, userID, token); err != nil {
		logger.Error("Failed to delete session", err)
		return err
	}

	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		user.FullName = updateData.FullName
	}
	if updateData.Phone != "" {
		user.Phone = updateData.Phone
	}
	if updateData.DefaultGoal != "" {
		if !domain.ValidGoal(updateData.DefaultGoal) {
			return domain.User{}, errors.New("invalid default goal")
		}
		user.DefaultGoal = updateData.DefaultGoal
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	logger.Info("User deleted", "user_id", id)

	return nil
}
