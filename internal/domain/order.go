package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderRequestItem — одна запрошенная позиция: товар и количество.
type OrderRequestItem struct {
	ProductID string
	Qty       int32
}

// OrderRequest — входные данные операции создания заказа. Запрос транзиентный,
// сам по себе не персистится.
type OrderRequest struct {
	CustomerID string
	Items      []OrderRequestItem
}

// Validate проверяет форму запроса и возвращает первую нарушенную проверку.
// Повторяющиеся product_id отклоняются: агрегировать количества молча мы не хотим.
func (r OrderRequest) Validate() error {
	if r.CustomerID == "" {
		return ErrCustomerRequired
	}
	if len(r.Items) == 0 {
		return ErrItemsRequired
	}

	seen := make(map[string]struct{}, len(r.Items))
	for _, item := range r.Items {
		if item.Qty <= 0 {
			return ErrItemQtyInvalid
		}
		if _, dup := seen[item.ProductID]; dup {
			return ErrDuplicateProduct
		}
		seen[item.ProductID] = struct{}{}
	}

	return nil
}

// OrderLineItem представляет одну позицию заказа с зафиксированной ценой.
// После конструирования позиция не изменяется.
type OrderLineItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string
	// ProductID — идентификатор товара из каталога.
	ProductID string
	// PriceMinor — цена за единицу на момент резолва каталога, в минимальных единицах.
	PriceMinor int64
	// Qty — количество единиц товара.
	Qty int32
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// Order агрегирует созданный заказ и его позиции.
type Order struct {
	ID          string
	CustomerID  string
	AmountMinor int64
	Items       []OrderLineItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder собирает заказ из позиций: присваивает идентификаторы, таймстемпы
// и считает итоговую сумму. Используется реализациями OrderStore, так как
// идентификаторы и таймстемпы закреплены за хранилищем.
func NewOrder(customerID string, items []OrderLineItem) Order {
	now := time.Now().UTC()

	stored := make([]OrderLineItem, 0, len(items))
	var amount int64
	for _, item := range items {
		item.ID = uuid.NewString()
		item.CreatedAt = now
		amount += int64(item.Qty) * item.PriceMinor
		stored = append(stored, item)
	}

	return Order{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		AmountMinor: amount,
		Items:       stored,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	// Сверяем сумму заказа с суммой позиций: qty * price.
	var calc int64
	for _, item := range o.Items {
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += int64(item.Qty) * item.PriceMinor
	}
	if calc != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
