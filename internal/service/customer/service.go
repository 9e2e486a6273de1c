package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
)

// Service регистрирует клиентов и отдаёт их на чтение.
type Service struct {
	repo   domain.CustomerRepository
	logger *log.Entry
}

// NewService конструирует сервис клиентов.
func NewService(repo domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customer-service")
	}
	return &Service{repo: repo, logger: logger}
}

// Register создаёт нового клиента. Email должен быть свободен.
func (s *Service) Register(name, email string) (domain.Customer, error) {
	now := time.Now().UTC()
	cust := domain.Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if errs := cust.ValidateInvariants(); len(errs) > 0 {
		return domain.Customer{}, errs[0]
	}

	if _, err := s.repo.FindByEmail(cust.Email); err == nil {
		return domain.Customer{}, domain.ErrCustomerEmailTaken
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.Customer{}, err
	}

	if err := s.repo.Create(cust); err != nil {
		s.logger.WithError(err).WithField("email", cust.Email).Error("failed to create customer")
		return domain.Customer{}, err
	}

	s.logger.WithField("customer_id", cust.ID).Info("customer registered")
	return cust, nil
}

// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
func (s *Service) Get(id string) (domain.Customer, error) {
	if id == "" {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return s.repo.FindByID(id)
}
