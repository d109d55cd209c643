package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sondeo-backend/internal/model"
	"sondeo-backend/utilities"
)

type stubUserRepo struct {
	byEmail map[string]*model.User
	created *model.User
}

// CreateUser snapshots the row as the database would see it; the service
// mutates the original object after the insert.
func (s *stubUserRepo) CreateUser(user *model.User) error {
	user.ID = 1
	stored := *user
	s.created = &stored
	return nil
}

func (s *stubUserRepo) GetUserByID(uint) (*model.User, error) {
	return nil, errors.New("not found")
}

func (s *stubUserRepo) GetUserByEmail(email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (s *stubUserRepo) GetAllUsers() ([]model.User, error) { return nil, nil }

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*model.User{}}
	svc := NewAuthService(repo)

	user, err := svc.Register(&model.User{
		Nombre:   "Ana",
		Apellido: "Paredes",
		Email:    "ana@example.com",
		Password: "secreto123",
	})
	require.NoError(t, err)

	assert.Equal(t, "cliente", repo.created.Rol)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.Password), []byte("secreto123")))
	assert.Empty(t, user.Password)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{byEmail: map[string]*model.User{}})

	_, err := svc.Register(&model.User{Nombre: "Ana", Email: "ana@example.com"})
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*model.User{
		"ana@example.com": {ID: 9, Email: "ana@example.com"},
	}}
	svc := NewAuthService(repo)

	_, err := svc.Register(&model.User{
		Nombre:   "Ana",
		Apellido: "Paredes",
		Email:    "ana@example.com",
		Password: "secreto123",
	})
	assert.Error(t, err)
}

func TestLoginVerifiesPassword(t *testing.T) {
	utilities.ConfigureJWT("test-access", "test-refresh")

	hashed, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &stubUserRepo{byEmail: map[string]*model.User{
		"ana@example.com": {ID: 9, Email: "ana@example.com", Password: string(hashed), Rol: "cliente"},
	}}
	svc := NewAuthService(repo)

	user, access, refresh, err := svc.Login("ana@example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := utilities.ValidateToken(access, false)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)

	_, _, _, err = svc.Login("ana@example.com", "wrong")
	assert.Error(t, err)
}
