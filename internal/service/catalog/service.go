package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

// Service добавляет товары в каталог и отдаёт их на чтение.
// Остатки меняет только операция создания заказа через ProductCatalog.
type Service struct {
	repo   domain.ProductRepository
	logger *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(repo domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-service")
	}
	return &Service{repo: repo, logger: logger}
}

// AddProduct создаёт новый товар. Название должно быть свободно.
func (s *Service) AddProduct(name string, priceMinor int64, quantity int32) (domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		PriceMinor: priceMinor,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	if _, err := s.repo.FindByName(product.Name); err == nil {
		return domain.Product{}, domain.ErrProductNameTaken
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return domain.Product{}, err
	}

	if err := s.repo.Create(product); err != nil {
		s.logger.WithError(err).WithField("name", product.Name).Error("failed to create product")
		return domain.Product{}, err
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("product added to catalog")
	return product, nil
}

// Get возвращает товар по идентификатору или ErrProductNotFound.
func (s *Service) Get(id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return s.repo.FindByID(id)
}
