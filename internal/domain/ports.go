package domain

// CustomerLookup резолвит идентификатор клиента в существующую запись.
type CustomerLookup interface {
	// FindByID возвращает клиента или ErrCustomerNotFound, если его нет.
	FindByID(id string) (Customer, error)
}

// ProductCatalog описывает каталог товаров с батчевым чтением и батчевой
// записью остатков.
type ProductCatalog interface {
	// FindAllByID возвращает только существующие товары из запрошенных —
	// подмножество без гарантии порядка. Возвращённые значения — рабочие
	// копии, которые вызывающий вправе менять до UpdateQuantity.
	FindAllByID(ids []string) ([]Product, error)
	// UpdateQuantity персистит переданные значения остатков для всех товаров
	// батча как есть. Конкурентные вызовы по одному товару хранилище не
	// сериализует: второй снапшот перезаписывает первый.
	UpdateQuantity(products []Product) error
}

// OrderStore персистит новые заказы. Идентификатор и таймстемпы присваивает хранилище.
type OrderStore interface {
	// Create сохраняет заказ клиента с переданными позициями и возвращает созданную запись.
	Create(customer Customer, items []OrderLineItem) (Order, error)
}
