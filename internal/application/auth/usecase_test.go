package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

type fakeDirectory struct {
	current  []entity.User
	reloaded []entity.User
	reloads  int
	err      error
}

func (f *fakeDirectory) Users(context.Context) ([]entity.User, error) { return f.current, f.err }

func (f *fakeDirectory) ReloadUsers(context.Context) ([]entity.User, error) {
	f.reloads++
	if f.reloaded != nil {
		f.current = f.reloaded
	}
	return f.current, f.err
}

func TestLogin(t *testing.T) {
	dir := &fakeDirectory{current: []entity.User{{ID: "E1", PIN: "1234", Name: "Ana", Role: "Vendedor"}}}
	uc := NewAuthUseCase(dir)

	u, err := uc.Login(context.Background(), " E1 ", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, 0, dir.reloads)

	_, err = uc.Login(context.Background(), "E1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(context.Background(), "E1", "9999")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, dir.reloads)
}

func TestLogin_ReloadsForNewEmployee(t *testing.T) {
	dir := &fakeDirectory{
		current:  []entity.User{{ID: "E1", PIN: "1234"}},
		reloaded: []entity.User{{ID: "E1", PIN: "1234"}, {ID: "E2", PIN: "0000", Name: "Nuevo"}},
	}
	u, err := NewAuthUseCase(dir).Login(context.Background(), "E2", "0000")
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", u.Name)
	assert.Equal(t, 1, dir.reloads)
}

func TestLogin_UpstreamError(t *testing.T) {
	dir := &fakeDirectory{err: domain.ErrUpstream}
	_, err := NewAuthUseCase(dir).Login(context.Background(), "E1", "1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestAuthorize(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)
	dir := &fakeDirectory{current: []entity.User{
		{ID: "ADM", PIN: string(hash), Role: "Administrador"},
		{ID: "V1", PIN: "1111", Role: "Vendedor"},
	}}
	uc := NewAuthUseCase(dir)

	u, err := uc.Authorize(context.Background(), &entity.Credential{UserID: "ADM", PIN: "4321"})
	require.NoError(t, err)
	assert.Equal(t, "ADM", u.ID)

	cases := []*entity.Credential{
		nil,
		{},
		{UserID: "ADM", PIN: "0000"},
		{UserID: "V1", PIN: "1111"},
		{UserID: "X", PIN: "1"},
	}
	for _, c := range cases {
		_, err := uc.Authorize(context.Background(), c)
		assert.ErrorIs(t, err, domain.ErrForbidden, "%+v", c)
	}
}

func TestPINMatches(t *testing.T) {
	assert.True(t, PINMatches(" 1234 ", "1234"))
	assert.False(t, PINMatches("1234", "12345"))
	assert.False(t, PINMatches("", ""))
}

func TestDisplayName(t *testing.T) {
	dir := &fakeDirectory{current: []entity.User{{ID: "E1", Name: "Ana"}}}
	uc := NewAuthUseCase(dir)
	assert.Equal(t, "Ana", uc.DisplayName(context.Background(), "E1"))
	assert.Equal(t, "", uc.DisplayName(context.Background(), "E2"))
}
