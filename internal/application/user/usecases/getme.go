package usecases

import (
	"context"

	"studia/internal/application/user/dto"
	"studia/internal/domain/user"
	"studia/internal/shared/logger"
)

// GetMeCommand identifies the authenticated caller.
type GetMeCommand struct {
	UserID uint
}

// GetMeUseCase returns the caller's profile.
type GetMeUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewGetMeUseCase creates the use case.
func NewGetMeUseCase(userRepo user.Repository, logger logger.Interface) *GetMeUseCase {
	return &GetMeUseCase{userRepo: userRepo, logger: logger}
}

// Execute loads the profile view.
func (uc *GetMeUseCase) Execute(ctx context.Context, cmd GetMeCommand) (*dto.UserView, error) {
	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	view := dto.NewUserView(account)
	return &view, nil
}
