package dto

import "github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"

// LoginRequest body para POST /api/login.
type LoginRequest struct {
	EmpleadoID Text `json:"empleadoId" validate:"required"`
	PIN        Text `json:"pin" validate:"required"`
}

// UserResponse usuario autenticado.
type UserResponse struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	NombreCompleto string `json:"nombreCompleto"`
	Sucursal       string `json:"sucursal"`
	Rol            string `json:"rol"`
}

// LoginResponse respuesta de POST /api/login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Usuario UserResponse `json:"usuario"`
}

// NewUserResponse arma la respuesta sin exponer el PIN.
func NewUserResponse(u *entity.User) UserResponse {
	name := u.Name
	if name == "" {
		name = "Usuario"
	}
	return UserResponse{ID: u.ID, Nombre: name, NombreCompleto: u.FullName, Sucursal: u.Branch, Rol: u.Role}
}

// CredentialRequest credencial de supervisor (recalcular, cerrar-corte).
// Acepta usuarioId o userId.
type CredentialRequest struct {
	UsuarioID Text `json:"usuarioId"`
	UserID    Text `json:"userId"`
	PIN       Text `json:"pin"`
}

// Credential convierte a entidad; nil si no viene.
func (r *CredentialRequest) Credential() *entity.Credential {
	if r == nil {
		return nil
	}
	id := r.UsuarioID.String()
	if id == "" {
		id = r.UserID.String()
	}
	if id == "" && r.PIN.String() == "" {
		return nil
	}
	return &entity.Credential{UserID: id, PIN: r.PIN.String()}
}
