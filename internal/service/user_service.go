// internal/service/user_service.go
package service

import (
	"github.com/miloszfede/filmweb/internal/model"
	"github.com/miloszfede/filmweb/internal/repository"
)

type UserService interface {
	GetUserByID(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetUserByID(id uint) (*model.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *UserServiceImpl) GetUserByUsername(username string) (*model.User, error) {
	return s.userRepo.FindByUsername(username)
}
