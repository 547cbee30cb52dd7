package usecases

import (
	"context"
	"errors"
	"fmt"

	"studia/internal/application/user/dto"
	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// GoogleProfile is the identity returned by the OAuth provider.
type GoogleProfile struct {
	ID    string
	Email string
	Name  string
}

// GoogleOAuthService drives the Google OAuth code flow.
type GoogleOAuthService interface {
	AuthCodeURL(state string) string
	ExchangeProfile(ctx context.Context, code string) (*GoogleProfile, error)
}

// HandleGoogleCallbackCommand carries the provider callback.
type HandleGoogleCallbackCommand struct {
	Code string
}

// HandleGoogleCallbackUseCase signs a user in via Google, creating or
// linking the local account as needed.
type HandleGoogleCallbackUseCase struct {
	userRepo     user.Repository
	oauthService GoogleOAuthService
	jwtService   JWTService
	logger       logger.Interface
}

// NewHandleGoogleCallbackUseCase creates the use case.
func NewHandleGoogleCallbackUseCase(
	userRepo user.Repository,
	oauthService GoogleOAuthService,
	jwtService JWTService,
	logger logger.Interface,
) *HandleGoogleCallbackUseCase {
	return &HandleGoogleCallbackUseCase{
		userRepo:     userRepo,
		oauthService: oauthService,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Execute exchanges the code and resolves the local account. Matching
// runs by Google ID first, then by verified email, then falls back to
// creating a fresh account.
func (uc *HandleGoogleCallbackUseCase) Execute(ctx context.Context, cmd HandleGoogleCallbackCommand) (*AuthResult, error) {
	profile, err := uc.oauthService.ExchangeProfile(ctx, cmd.Code)
	if err != nil {
		return nil, apperrors.NewOAuthError("google", err.Error())
	}

	account, err := uc.resolveAccount(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !account.CanLogin() {
		return nil, apperrors.NewAccountInactiveError()
	}

	tokens, err := uc.jwtService.Generate(account.SID(), account.Role().String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("user logged in via google", "user_sid", account.SID())
	return &AuthResult{User: dto.NewUserView(account), Tokens: *tokens}, nil
}

func (uc *HandleGoogleCallbackUseCase) resolveAccount(ctx context.Context, profile *GoogleProfile) (*user.User, error) {
	account, err := uc.userRepo.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up google account: %w", err)
	}

	account, err = uc.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		if linkErr := account.LinkGoogleAccount(profile.ID); linkErr != nil {
			return nil, linkErr
		}
		if updateErr := uc.userRepo.Update(ctx, account); updateErr != nil {
			return nil, fmt.Errorf("failed to link google account: %w", updateErr)
		}
		return account, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	email, err := vo.NewEmail(profile.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	name, err := vo.NewName(profile.Name)
	if err != nil {
		// Some Google display names fail local validation. Fall back to
		// the email local part.
		name, err = vo.NewName(email.LocalPart())
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	account, err = user.NewGoogleUser(email, name, profile.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	uc.logger.Infow("user created via google", "user_sid", account.SID())
	return account, nil
}
