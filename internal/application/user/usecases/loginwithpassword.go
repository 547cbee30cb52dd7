package usecases

import (
	"context"
	"errors"
	"fmt"

	"studia/internal/application/user/dto"
	"studia/internal/domain/user"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

// LoginWithPasswordCommand carries login credentials.
type LoginWithPasswordCommand struct {
	Email    string
	Password string
}

// LoginWithPasswordUseCase authenticates an email and password pair.
type LoginWithPasswordUseCase struct {
	userRepo   user.Repository
	hasher     user.PasswordHasher
	jwtService JWTService
	logger     logger.Interface
}

// NewLoginWithPasswordUseCase creates the use case.
func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	jwtService JWTService,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Execute verifies the credentials and issues tokens. Lookup and
// verification failures share one generic error so the endpoint does
// not reveal which emails are registered.
func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*AuthResult, error) {
	account, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			uc.logger.Warnw("login attempt for unknown email", "email", utils.MaskEmail(cmd.Email))
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !account.CanLogin() {
		return nil, apperrors.NewAccountInactiveError()
	}
	if account.PasswordHash() == nil {
		return nil, apperrors.NewInvalidCredentialsError()
	}
	if err := uc.hasher.Verify(*account.PasswordHash(), cmd.Password); err != nil {
		uc.logger.Warnw("failed login attempt", "user_sid", account.SID())
		return nil, apperrors.NewInvalidCredentialsError()
	}

	tokens, err := uc.jwtService.Generate(account.SID(), account.Role().String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("user logged in", "user_sid", account.SID())
	return &AuthResult{User: dto.NewUserView(account), Tokens: *tokens}, nil
}
