package entity

import "github.com/diegoleonuniline/umo-pos-api/pkg/textfold"

// User empleado con acceso al punto de venta.
type User struct {
	ID       string
	PIN      string // texto plano o hash bcrypt
	Name     string
	FullName string
	Branch   string
	Role     string
}

// supervisorRoles subcadenas de puesto que pueden autorizar cortes y reaperturas.
var supervisorRoles = []string{"admin", "gerente", "manager", "super"}

// IsSupervisor indica si el puesto autoriza operaciones de caja sensibles.
func (u *User) IsSupervisor() bool {
	return textfold.ContainsAny(u.Role, supervisorRoles...)
}

// Credential ID de empleado + PIN enviados para autorizar una operación.
type Credential struct {
	UserID string
	PIN    string
}

// Empty indica que no se envió credencial.
func (c *Credential) Empty() bool {
	return c == nil || (c.UserID == "" && c.PIN == "")
}
