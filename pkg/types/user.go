package types

import "time"

// UserRole represents the different user roles in the system
type UserRole string

const (
	RoleAdministracion     UserRole = "administracion"
	RoleMedicoGeneral      UserRole = "medico_general"
	RoleMedicoEspecialista UserRole = "medico_especialista"
	RoleFundacion          UserRole = "fundacion"
	RoleLaboratorio        UserRole = "laboratorio"
	RoleFarmacia           UserRole = "farmacia"
)

// UserClaims represents the decoded identity carried by a bearer token
type UserClaims struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Doctor represents a physician catalog entry
type Doctor struct {
	ID        string   `json:"id"`
	Name      string   `json:"nombre"`
	Specialty string   `json:"especialidad,omitempty"`
	Role      UserRole `json:"rol,omitempty"`
	IsActive  bool     `json:"activo"`
}

// Nurse represents a nursing staff catalog entry
type Nurse struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Shift    string `json:"turno,omitempty"`
	IsActive bool   `json:"activo"`
}
