package domain

import (
	"strings"
	"time"
)

// Customer описывает клиента магазина. Ядро создания заказа читает только факт
// существования записи, остальные поля нужны сервису регистрации.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты клиента и возвращает список замечаний.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if !isPlausibleEmail(c.Email) {
		errs = append(errs, ErrCustomerEmailInvalid)
	}

	return errs
}

// isPlausibleEmail отсекает заведомо пустые и бессмысленные адреса.
// Полная верификация адреса не задача этого слоя.
func isPlausibleEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
