package service

import (
	"errors"
	"fmt"

	"hireview/internal/dto"
	"hireview/internal/model"
	"hireview/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(req dto.SignupRequestDTO) (*dto.RecruiterDTO, error)
	Login(req dto.LoginRequestDTO) (*dto.RecruiterDTO, error)
}

type authService struct {
	recruiterRepo repository.RecruiterRepository
}

func NewAuthService(recruiterRepo repository.RecruiterRepository) AuthService {
	return &authService{recruiterRepo: recruiterRepo}
}

func (s *authService) Signup(req dto.SignupRequestDTO) (*dto.RecruiterDTO, error) {
	if _, err := s.recruiterRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing recruiter: %w", err)
	}

	recruiter := model.Recruiter{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}
	if err := s.recruiterRepo.Create(&recruiter); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Signup: failed to create recruiter")
		return nil, fmt.Errorf("creating recruiter: %w", err)
	}

	var resp dto.RecruiterDTO
	if err := copier.Copy(&resp, &recruiter); err != nil {
		return nil, fmt.Errorf("preparing signup response: %w", err)
	}
	return &resp, nil
}

func (s *authService) Login(req dto.LoginRequestDTO) (*dto.RecruiterDTO, error) {
	recruiter, err := s.recruiterRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up recruiter: %w", err)
	}

	// Plaintext comparison, matching the stored credential format.
	if recruiter.Password != req.Password {
		return nil, ErrInvalidCredentials
	}

	var resp dto.RecruiterDTO
	if err := copier.Copy(&resp, recruiter); err != nil {
		return nil, fmt.Errorf("preparing login response: %w", err)
	}
	return &resp, nil
}
