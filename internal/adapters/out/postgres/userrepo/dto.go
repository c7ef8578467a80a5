// Package userrepo maps identity users to the users table.
package userrepo

import (
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *identity.User) UserDTO {
	return UserDTO{
		ID:        u.ID().Bytes(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*identity.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return identity.RestoreUser(id, dto.Email, dto.Phone, dto.FirstName, dto.LastName, role, dto.IsActive, dto.CreatedAt)
}
