package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	CustomerLookup
	// Create сохраняет нового клиента. Возвращает ErrCustomerExists при занятом ID
	// и ErrCustomerEmailTaken при занятом email.
	Create(customer Customer) error
	// FindByEmail возвращает клиента по email или ErrCustomerNotFound.
	FindByEmail(email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	ProductCatalog
	// Create сохраняет новый товар. Возвращает ErrProductExists при занятом ID
	// и ErrProductNameTaken при занятом названии.
	Create(product Product) error
	// FindByID возвращает товар по идентификатору или ErrProductNotFound.
	FindByID(id string) (Product, error)
	// FindByName возвращает товар по названию или ErrProductNotFound.
	FindByName(name string) (Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	OrderStore
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
