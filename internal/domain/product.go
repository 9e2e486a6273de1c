package domain

import (
	"strings"
	"time"
)

// Product описывает товар каталога. Quantity — доступный остаток на складе;
// ядро создания заказа работает с transient-копией этой записи и уменьшает
// Quantity локально до пакетной записи обратно в каталог.
type Product struct {
	ID string
	// Name — человекочитаемое название; уникально в каталоге.
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// Quantity — неотрицательный остаток на складе.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceInvalid)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQtyInvalid)
	}

	return errs
}
