package account

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleClient     = "client"
	RoleContractor = "contractor"
)

// Account — учётная запись клиента или исполнителя.
type Account struct {
	ID           string         `db:"id" json:"id"`
	Role         string         `db:"role" json:"role"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	AvatarURL    *string        `db:"avatar_url" json:"avatar_url,omitempty"`
	Phone        *string        `db:"phone" json:"phone,omitempty"`
	CompanyName  *string        `db:"company_name" json:"company_name,omitempty"`
	Skills       pq.StringArray `db:"skills" json:"skills" swaggertype:"array,string"`
	Rating       float64        `db:"rating" json:"rating"`
	Country      *string        `db:"country" json:"country,omitempty"`
	City         *string        `db:"city" json:"city,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Role     string `json:"role" binding:"required,oneof=client contractor"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`

	// Client profile fields
	CompanyName string `json:"company_name,omitempty"`

	// Contractor profile fields
	Skills  []string `json:"skills,omitempty"`
	Country string   `json:"country,omitempty"`
	City    string   `json:"city,omitempty"`
	Phone   string   `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Account      *Account `json:"account"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshResponse struct {
	AccessToken string   `json:"access_token"`
	Account     *Account `json:"account"`
}

// ClientProfileUpdate is the typed update payload for client accounts.
// Nil fields are left unchanged.
type ClientProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// ContractorProfileUpdate is the typed update payload for contractor accounts.
type ContractorProfileUpdate struct {
	Name      *string  `json:"name,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Country   *string  `json:"country,omitempty"`
	City      *string  `json:"city,omitempty"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
}

// CreateParams carries everything needed to provision an account row.
type CreateParams struct {
	ID           string
	Role         string
	Name         string
	Email        string
	PasswordHash string
	CompanyName  *string
	Skills       []string
	Country      *string
	City         *string
	Phone        *string
}
