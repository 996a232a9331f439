package service

import (
	"errors"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetByID(id string) (*model.User, error) {
	user, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("user not found")
		}
		return nil, util.Internal("load user", err)
	}
	return user, nil
}

func (s *UserService) ListStudents(semester, page, limit int) ([]model.User, int64, error) {
	students, total, err := s.Repo.ListStudents(semester, page, limit)
	if err != nil {
		return nil, 0, util.Internal("list students", err)
	}
	return students, total, nil
}
