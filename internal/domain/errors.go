package domain

import "errors"

var (
	// ErrInvalidCustomer возвращается, когда customer_id не находит существующего клиента.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrInvalidProduct возвращается, когда запрошенный товар отсутствует в каталоге.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInsufficientStock возвращается, когда запрошенное количество превышает остаток.
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	// ErrDuplicateProduct возвращается при повторении product_id внутри одного запроса.
	ErrDuplicateProduct = errors.New("duplicate product in order request")
	// Ошибка отсутствующего идентификатора клиента в запросе.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одного товара в запросе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")

	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка некорректного email клиента.
	ErrCustomerEmailInvalid = errors.New("customer email is invalid")
	// ErrCustomerEmailTaken возвращается при регистрации клиента с занятым email.
	ErrCustomerEmailTaken = errors.New("customer email is already taken")
	// ErrCustomerExists возвращается, если клиент с таким ID уже сохранён.
	ErrCustomerExists = errors.New("customer already exists")
	// ErrCustomerNotFound возвращается, если клиент не найден в репозитории.
	ErrCustomerNotFound = errors.New("customer not found")

	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceInvalid = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrProductQtyInvalid = errors.New("product quantity must be non-negative")
	// ErrProductNameTaken возвращается при добавлении товара с занятым названием.
	ErrProductNameTaken = errors.New("product name is already taken")
	// ErrProductExists возвращается, если товар с таким ID уже сохранён.
	ErrProductExists = errors.New("product already exists")
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists возвращается, если запись заказа с таким ID уже существует.
	ErrOrderExists = errors.New("order already exists")
	// Ошибка при некорректной цене позиции заказа.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")
)

// validationErrors перечисляет ошибки, которые означают отклонённый запрос,
// а не сбой инфраструктуры.
var validationErrors = []error{
	ErrInvalidCustomer,
	ErrInvalidProduct,
	ErrInsufficientStock,
	ErrDuplicateProduct,
	ErrCustomerRequired,
	ErrItemsRequired,
	ErrItemQtyInvalid,
}

// IsValidationError проверяет, относится ли ошибка к отклонению запроса на создание заказа.
// Такие ошибки окончательны: повтор с тем же запросом даст тот же результат.
func IsValidationError(err error) bool {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			return true
		}
	}
	return false
}
