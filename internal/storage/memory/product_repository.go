package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.Product
	byName map[string]string
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[string]domain.Product),
		byName: make(map[string]string),
	}
}

// Create сохраняет новый товар, если ID и название ещё не заняты.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrProductExists
	}
	if _, taken := r.byName[product.Name]; taken {
		return domain.ErrProductNameTaken
	}
	r.items[product.ID] = product
	r.byName[product.Name] = product.ID
	return nil
}

// FindByID возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) FindByID(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// FindByName возвращает товар по названию или ErrProductNotFound.
func (r *productRepositoryInMemory) FindByName(name string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return r.items[id], nil
}

// FindAllByID возвращает копии существующих товаров из запрошенных.
// Отсутствующие идентификаторы молча пропускаются; порядок соответствует
// порядку входных идентификаторов, но вызывающий не должен на него полагаться.
func (r *productRepositoryInMemory) FindAllByID(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// UpdateQuantity записывает остатки всех переданных товаров одним действием.
// Проверки выполняются до первой записи, чтобы не оставлять частичных обновлений.
func (r *productRepositoryInMemory) UpdateQuantity(products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range products {
		if _, ok := r.items[product.ID]; !ok {
			return domain.ErrProductNotFound
		}
		if product.Quantity < 0 {
			return domain.ErrProductQtyInvalid
		}
	}

	now := time.Now().UTC()
	for _, product := range products {
		stored := r.items[product.ID]
		stored.Quantity = product.Quantity
		stored.UpdatedAt = now
		r.items[product.ID] = stored
	}
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
