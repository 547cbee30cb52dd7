package mappers

import (
	"fmt"

	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
	"studia/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UserModel) (*user.User, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *user.User) (*models.UserModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

// userMapper is the concrete implementation of UserMapper
type userMapper struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &userMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *userMapper) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid persisted email: %w", err)
	}

	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid persisted name: %w", err)
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid persisted status: %w", err)
	}

	entity, err := user.ReconstructUser(user.UserReconstructParams{
		ID:            model.ID,
		SID:           model.SID,
		Email:         email,
		Name:          name,
		Role:          user.Role(model.Role),
		Status:        *status,
		PasswordHash:  model.PasswordHash,
		GoogleID:      model.GoogleID,
		EmailVerified: model.EmailVerified,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *userMapper) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.UserModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		Email:         entity.Email().String(),
		Name:          entity.Name().String(),
		Role:          entity.Role().String(),
		Status:        entity.Status().String(),
		PasswordHash:  entity.PasswordHash(),
		GoogleID:      entity.GoogleID(),
		EmailVerified: entity.IsEmailVerified(),
		Version:       entity.Version(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *userMapper) ToEntities(userModels []*models.UserModel) ([]*user.User, error) {
	entities := make([]*user.User, 0, len(userModels))

	for i, model := range userModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map user model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}
