// Package entities определяет доменные сущности сервиса заметок.
package entities

import "time"

// Account - внутренняя учетная запись, связанная 1:1 с пользователем внешнего провайдера.
type Account struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	ExternalID string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Identity - пользователь, подтвержденный внешним провайдером аутентификации.
type Identity struct {
	ExternalID string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// NewAccount создает учетную запись для впервые увиденной identity.
func NewAccount(identity *Identity) *Account {
	account := &Account{
		Email:      identity.Email,
		ExternalID: identity.ExternalID,
	}
	if identity.Name != "" {
		name := identity.Name
		account.Name = &name
	}
	return account
}
