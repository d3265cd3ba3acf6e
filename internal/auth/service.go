package auth

import (
	"log/slog"

	userDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetByUsername(username string) (*userDatamodel.AppUser, error)
	ExistsByUsername(username string) (bool, error)
	Create(user *userDatamodel.AppUser) error
}

type Service struct {
	userRepo   UserRepository
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(userRepo UserRepository, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a user with a bcrypt password hash. Duplicate
// usernames report ErrUsernameTaken.
func (s *Service) Register(dto CredentialsDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	taken, err := s.userRepo.ExistsByUsername(dto.Username)
	if err != nil {
		s.logger.Error("failed to check username", "error", err)
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	user := &userDatamodel.AppUser{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Role:         RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("failed to create user", "username", dto.Username, "error", err)
		return err
	}

	s.logger.Info("user registered", "username", dto.Username)
	return nil
}

// Authenticate verifies credentials and issues a bearer token.
func (s *Service) Authenticate(dto CredentialsDTO) (*TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(dto.Username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.Username, user.Role)
	if err != nil {
		s.logger.Error("failed to generate token", "username", dto.Username, "error", err)
		return nil, err
	}

	return &TokenResponse{Token: token}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}
