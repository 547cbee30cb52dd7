package usecases

import (
	"context"
	"fmt"

	"studia/internal/application/user/dto"
	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// TokenPair is an issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// JWTService issues and refreshes authentication tokens.
type JWTService interface {
	Generate(userSID string, role string) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

// RegisterWithPasswordCommand carries a new registration.
type RegisterWithPasswordCommand struct {
	Email    string
	Name     string
	Password string
}

// AuthResult is a logged-in user with their tokens.
type AuthResult struct {
	User   dto.UserView
	Tokens TokenPair
}

// RegisterWithPasswordUseCase creates an account from email, name and
// password and logs the user straight in.
type RegisterWithPasswordUseCase struct {
	userRepo   user.Repository
	hasher     user.PasswordHasher
	jwtService JWTService
	logger     logger.Interface
}

// NewRegisterWithPasswordUseCase creates the use case.
func NewRegisterWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	jwtService JWTService,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Execute validates, creates and authenticates the account.
func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*AuthResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := user.NewUser(email, name, hash)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := uc.jwtService.Generate(account.SID(), account.Role().String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("user registered", "user_sid", account.SID())
	return &AuthResult{User: dto.NewUserView(account), Tokens: *tokens}, nil
}
