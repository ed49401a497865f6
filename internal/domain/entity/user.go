package entity

import "time"

// User representa a un operador del local (admin o cajero).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, cajero
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
