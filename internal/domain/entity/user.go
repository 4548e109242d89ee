package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema.
// PasswordHash nunca se serializa hacia afuera; los DTOs de respuesta no lo incluyen.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt (cost 12), nunca plano después de persistir
	Role         string // admin | user
	IsActive     bool
	LastLogin    *time.Time // nil hasta el primer login
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail canonicaliza un email antes de buscarlo o persistirlo:
// sin espacios alrededor y en minúsculas. Los emails se almacenan siempre
// normalizados, de modo que "Test@Example.com " y "test@example.com" son
// la misma cuenta.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
