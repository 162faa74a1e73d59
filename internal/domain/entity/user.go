package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User usuario del sistema. MustReset fuerza cambio de contraseña en el
// primer login (cuentas sembradas por un admin).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
	MustReset    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
