package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/utils"
)

var (
	ErrEmailTaken     = errors.New("email is already registered")
	ErrSelfDelete     = errors.New("users cannot delete themselves")
	ErrAccountInactive = errors.New("account is inactive")
)

// userService provides user management and credential checks.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) newUser(name, email, passwordHash string, role domain.Role, perms []domain.Permission, createdBy string) domain.User {
	now := time.Now().UTC()
	userID := uuid.NewString()
	if createdBy == "" {
		createdBy = userID // self-registration
	}
	return domain.User{
		UserID:       userID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Permissions:  perms,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
}

// RegisterUser creates a self-registered employee account with no extra permissions.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewAppError(409, ErrEmailTaken.Error(), apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	user := s.newUser(req.Name, req.Email, hash, domain.RoleEmployee, nil, "")
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", "email", req.Email)
		return nil, err
	}

	s.LogInfo(ctx, "User registered", "user_id", user.UserID)
	return &user, nil
}

// CreateEmployee creates a user with an explicit role and permission set.
func (s *userService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.User, error) {
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewAppError(422, "unknown role "+req.Role, apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewAppError(409, ErrEmailTaken.Error(), apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	perms := make([]domain.Permission, len(req.Permissions))
	for i, p := range req.Permissions {
		perms[i] = domain.Permission(p)
	}

	user := s.newUser(req.Name, req.Email, hash, role, perms, creatorUserID)
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save employee", "email", req.Email)
		return nil, err
	}

	s.LogInfo(ctx, "Employee created", "user_id", user.UserID, "role", req.Role)
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// UpdateUser updates an existing user.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindUserByEmail(ctx, *req.Email); err == nil {
			return nil, apperrors.NewAppError(409, ErrEmailTaken.Error(), apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.IsValid() {
			return nil, apperrors.NewAppError(422, "unknown role "+*req.Role, apperrors.ErrValidation)
		}
		user.Role = role
	}
	if req.Permissions != nil {
		perms := make([]domain.Permission, len(req.Permissions))
		for i, p := range req.Permissions {
			perms[i] = domain.Permission(p)
		}
		user.Permissions = perms
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", "user_id", userID)
		return nil, err
	}
	return user, nil
}

// UpdateRefreshToken updates the refresh token details for a user.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshTokenHash(ctx, userID, refreshTokenHash, &refreshTokenExpiryTime, time.Now().UTC())
}

// ClearRefreshToken clears the refresh token for a user.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshTokenHash(ctx, userID, "", nil, time.Now().UTC())
}

// DeleteUser marks a user as deleted (soft delete). Self-deletion is refused.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID == requestingUserID {
		return apperrors.NewAppError(409, ErrSelfDelete.Error(), apperrors.ErrConflict)
	}
	return s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), requestingUserID)
}

// AuthenticateUser authenticates a user with email and password. Failures are
// deliberately indistinct so callers cannot probe for registered emails.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(401, ErrAccountInactive.Error(), apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// FindOrCreateGoogleUser resolves a Google identity to a local user,
// provisioning an employee account on first sign-in.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info == nil || info.Email == "" {
		return nil, apperrors.NewAppError(422, "google profile is missing an email", apperrors.ErrValidation)
	}
	if !info.VerifiedEmail {
		return nil, apperrors.NewAppError(401, "google email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		if !user.IsActive {
			return nil, apperrors.NewAppError(401, ErrAccountInactive.Error(), apperrors.ErrUnauthorized)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// First sign-in: provision with an unguessable password so the account
	// can only authenticate through Google until a password reset.
	random, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate placeholder password", err)
	}
	hash, err := utils.HashPassword(random)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash placeholder password", err)
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}
	newUser := s.newUser(name, info.Email, hash, domain.RoleEmployee, nil, "")
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to provision google user", "email", info.Email)
		return nil, err
	}

	s.LogInfo(ctx, "Google user provisioned", "user_id", newUser.UserID)
	return &newUser, nil
}
