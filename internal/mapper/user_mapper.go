package mapper

import (
	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:             u.Id,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Name:           u.Name,
		Role:           entity.UserRole(u.Role),
		Type:           entity.UserType(u.Type),
		JobTitle:       u.JobTitle,
		BusinessName:   u.BusinessName,
		BusinessSector: u.BusinessSector,
		Phone:          u.Phone,
		Provider:       u.Provider,
		PlanId:         u.PlanId,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:             u.Id,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Name:           u.Name,
		Role:           string(u.Role),
		Type:           string(u.Type),
		JobTitle:       u.JobTitle,
		BusinessName:   u.BusinessName,
		BusinessSector: u.BusinessSector,
		Phone:          u.Phone,
		Provider:       u.Provider,
		PlanId:         u.PlanId,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) OTPToEntity(o *model.PasswordResetOTP) *entity.PasswordResetOTP {
	if o == nil {
		return nil
	}
	return &entity.PasswordResetOTP{
		Id:        o.Id,
		UserId:    o.UserId,
		Code:      o.Code,
		ExpiresAt: o.ExpiresAt,
		Used:      o.Used,
		CreatedAt: o.CreatedAt,
	}
}

func (m *UserMapper) OTPToModel(o *entity.PasswordResetOTP) *model.PasswordResetOTP {
	if o == nil {
		return nil
	}
	return &model.PasswordResetOTP{
		Id:        o.Id,
		UserId:    o.UserId,
		Code:      o.Code,
		ExpiresAt: o.ExpiresAt,
		Used:      o.Used,
		CreatedAt: o.CreatedAt,
	}
}
