package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"sondeo-backend/internal/model"
	"sondeo-backend/internal/repository"
	"sondeo-backend/utilities"
)

// AuthService interface
type AuthService interface {
	Register(user *model.User) (*model.User, error)
	Login(email, password string) (*model.User, string, string, error)
	Refresh(refreshToken string) (string, string, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService initializes authentication service
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(user *model.User) (*model.User, error) {
	if user.Nombre == "" || user.Apellido == "" || user.Email == "" || user.Password == "" {
		return nil, errors.New("todos los campos son obligatorios")
	}

	if existing, err := s.userRepo.GetUserByEmail(user.Email); err == nil && existing != nil {
		return nil, errors.New("este correo ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}
	user.Password = string(hashed)
	if user.Rol == "" {
		user.Rol = "cliente"
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, errors.New("failed to store user in database")
	}

	user.Password = ""
	return user, nil
}

func (s *authService) Login(email, password string) (*model.User, string, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, "", "", errors.New("credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", errors.New("credenciales inválidas")
	}

	access, refresh, err := utilities.GenerateTokens(user)
	if err != nil {
		return nil, "", "", errors.New("failed to generate tokens")
	}

	user.Password = ""
	return user, access, refresh, nil
}

func (s *authService) Refresh(refreshToken string) (string, string, error) {
	return utilities.RefreshTokens(refreshToken)
}
