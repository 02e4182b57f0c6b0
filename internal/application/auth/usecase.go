package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// UserDirectory fuente de usuarios (el caché del catálogo).
type UserDirectory interface {
	Users(ctx context.Context) ([]entity.User, error)
	ReloadUsers(ctx context.Context) ([]entity.User, error)
}

// AuthUseCase login por PIN y autorización de operaciones de supervisor.
type AuthUseCase struct {
	users UserDirectory
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users UserDirectory) *AuthUseCase {
	return &AuthUseCase{users: users}
}

// Login valida ID de empleado y PIN. Si no hay coincidencia con la lista en
// memoria se recarga una vez, por si el empleado se dio de alta después del arranque.
func (uc *AuthUseCase) Login(ctx context.Context, employeeID, pin string) (*entity.User, error) {
	employeeID, pin = strings.TrimSpace(employeeID), strings.TrimSpace(pin)
	if employeeID == "" || pin == "" {
		return nil, fmt.Errorf("ID de empleado y PIN son requeridos: %w", domain.ErrInvalidInput)
	}

	users, err := uc.users.Users(ctx)
	if err != nil {
		return nil, err
	}
	if u := match(users, employeeID, pin); u != nil {
		return u, nil
	}

	users, err = uc.users.ReloadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if u := match(users, employeeID, pin); u != nil {
		return u, nil
	}
	return nil, domain.ErrUnauthorized
}

// Authorize resuelve la credencial a un usuario con puesto de supervisor.
// Credencial vacía, PIN incorrecto o puesto insuficiente son ErrForbidden.
func (uc *AuthUseCase) Authorize(ctx context.Context, cred *entity.Credential) (*entity.User, error) {
	if cred.Empty() {
		return nil, fmt.Errorf("se requiere autorización de un supervisor: %w", domain.ErrForbidden)
	}
	users, err := uc.users.Users(ctx)
	if err != nil {
		return nil, err
	}
	u := match(users, strings.TrimSpace(cred.UserID), strings.TrimSpace(cred.PIN))
	if u == nil {
		return nil, fmt.Errorf("credencial de autorización inválida: %w", domain.ErrForbidden)
	}
	if !u.IsSupervisor() {
		return nil, fmt.Errorf("el puesto %q no puede autorizar: %w", u.Role, domain.ErrForbidden)
	}
	return u, nil
}

// DisplayName nombre del empleado con ese ID; "" si no existe o falla la lectura.
func (uc *AuthUseCase) DisplayName(ctx context.Context, employeeID string) string {
	users, err := uc.users.Users(ctx)
	if err != nil {
		return ""
	}
	for i := range users {
		if users[i].ID == strings.TrimSpace(employeeID) {
			return users[i].Name
		}
	}
	return ""
}

func match(users []entity.User, id, pin string) *entity.User {
	for i := range users {
		if users[i].ID == id && PINMatches(users[i].PIN, pin) {
			u := users[i]
			return &u
		}
	}
	return nil
}

// PINMatches compara el PIN guardado (texto plano o hash bcrypt) con el recibido.
func PINMatches(stored, given string) bool {
	stored = strings.TrimSpace(stored)
	if stored == "" || given == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
