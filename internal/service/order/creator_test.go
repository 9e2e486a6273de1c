package order

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/commerce/internal/domain"
	"github.com/vladislavdragonenkov/commerce/internal/storage/memory"
)

type countingCatalog struct {
	domain.ProductRepository
	findErr   error
	updateErr error
	updates   [][]domain.Product
}

func (c *countingCatalog) FindAllByID(ids []string) ([]domain.Product, error) {
	if c.findErr != nil {
		return nil, c.findErr
	}
	return c.ProductRepository.FindAllByID(ids)
}

func (c *countingCatalog) UpdateQuantity(products []domain.Product) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	batch := append([]domain.Product(nil), products...)
	c.updates = append(c.updates, batch)
	return c.ProductRepository.UpdateQuantity(products)
}

type countingOrders struct {
	domain.OrderRepository
	createErr error
	createCnt int
}

func (c *countingOrders) Create(customer domain.Customer, items []domain.OrderLineItem) (domain.Order, error) {
	if c.createErr != nil {
		return domain.Order{}, c.createErr
	}
	c.createCnt++
	return c.OrderRepository.Create(customer, items)
}

type failingCustomers struct {
	err error
}

func (f failingCustomers) FindByID(string) (domain.Customer, error) {
	return domain.Customer{}, f.err
}

type stubEvents struct {
	orders []domain.Order
	err    error
}

func (s *stubEvents) OrderCreated(order domain.Order) error {
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

type creatorFixture struct {
	customers domain.CustomerRepository
	catalog   *countingCatalog
	orders    *countingOrders
	events    *stubEvents
	creator   *Creator
}

// newCreatorFixture собирает сервис поверх in-memory репозиториев с одним
// клиентом и двумя товарами на складе.
func newCreatorFixture(t *testing.T) *creatorFixture {
	t.Helper()

	customers := memory.NewCustomerRepository()
	if err := customers.Create(domain.Customer{ID: "customer-1", Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	catalog := &countingCatalog{ProductRepository: memory.NewProductRepository()}
	seed := []domain.Product{
		{ID: "product-1", Name: "Keyboard", PriceMinor: 100, Quantity: 10},
		{ID: "product-2", Name: "Mouse", PriceMinor: 250, Quantity: 4},
	}
	for _, product := range seed {
		if err := catalog.ProductRepository.Create(product); err != nil {
			t.Fatalf("seed product %s: %v", product.ID, err)
		}
	}

	orders := &countingOrders{OrderRepository: memory.NewOrderRepository()}
	events := &stubEvents{}

	return &creatorFixture{
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		events:    events,
		creator:   NewCreator(customers, catalog, orders, events, nil, nil),
	}
}

func (f *creatorFixture) productQuantity(t *testing.T, id string) int32 {
	t.Helper()
	product, err := f.catalog.ProductRepository.FindByID(id)
	if err != nil {
		t.Fatalf("find product %s: %v", id, err)
	}
	return product.Quantity
}

func TestCreatorExecute_Success(t *testing.T) {
	f := newCreatorFixture(t)

	order, err := f.creator.Execute(domain.OrderRequest{
		CustomerID: "customer-1",
		Items: []domain.OrderRequestItem{
			{ProductID: "product-1", Qty: 3},
			{ProductID: "product-2", Qty: 2},
		},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if order.ID == "" {
		t.Fatal("expected assigned order id")
	}
	if order.CustomerID != "customer-1" {
		t.Fatalf("unexpected customer id: %s", order.CustomerID)
	}
	// 3*100 + 2*250
	if order.AmountMinor != 800 {
		t.Fatalf("unexpected amount: %d", order.AmountMinor)
	}
	if len(order.Items) != 2 {
		t.Fatalf("unexpected items count: %d", len(order.Items))
	}

	// Позиции идут в порядке запроса, цена зафиксирована из каталога.
	if order.Items[0].ProductID != "product-1" || order.Items[0].PriceMinor != 100 || order.Items[0].Qty != 3 {
		t.Fatalf("unexpected first item: %+v", order.Items[0])
	}
	if order.Items[1].ProductID != "product-2" || order.Items[1].PriceMinor != 250 || order.Items[1].Qty != 2 {
		t.Fatalf("unexpected second item: %+v", order.Items[1])
	}

	// Заказ сохранён и читается обратно.
	stored, err := f.orders.Get(order.ID)
	if err != nil {
		t.Fatalf("get stored order: %v", err)
	}
	if stored.AmountMinor != order.AmountMinor || len(stored.Items) != 2 {
		t.Fatalf("stored order differs: %+v", stored)
	}

	// Остатки уменьшены.
	if got := f.productQuantity(t, "product-1"); got != 7 {
		t.Fatalf("unexpected product-1 quantity: %d", got)
	}
	if got := f.productQuantity(t, "product-2"); got != 2 {
		t.Fatalf("unexpected product-2 quantity: %d", got)
	}

	// Остатки записаны одним батчем со всеми товарами запроса.
	if len(f.catalog.updates) != 1 {
		t.Fatalf("expected one UpdateQuantity batch, got %d", len(f.catalog.updates))
	}
	if len(f.catalog.updates[0]) != 2 {
		t.Fatalf("expected batch of 2 products, got %d", len(f.catalog.updates[0]))
	}

	// Событие опубликовано.
	if len(f.events.orders) != 1 || f.events.orders[0].ID != order.ID {
		t.Fatalf("unexpected published events: %+v", f.events.orders)
	}
}

func TestCreatorExecute_RequestOrderPreserved(t *testing.T) {
	f := newCreatorFixture(t)

	order, err := f.creator.Execute(domain.OrderRequest{
		CustomerID: "customer-1",
		Items: []domain.OrderRequestItem{
			{ProductID: "product-2", Qty: 1},
			{ProductID: "product-1", Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if order.Items[0].ProductID != "product-2" || order.Items[1].ProductID != "product-1" {
		t.Fatalf("items order does not follow request: %+v", order.Items)
	}
}

func TestCreatorExecute_NotIdempotent(t *testing.T) {
	f := newCreatorFixture(t)

	req := domain.OrderRequest{
		CustomerID: "customer-1",
		Items:      []domain.OrderRequestItem{{ProductID: "product-2", Qty: 1}},
	}

	first, err := f.creator.Execute(req)
	if err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	second, err := f.creator.Execute(req)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}

	// Каждый вызов создаёт новый заказ и списывает остаток заново.
	if first.ID == second.ID {
		t.Fatalf("expected distinct orders, got same id %s", first.ID)
	}
	if f.orders.createCnt != 2 {
		t.Fatalf("expected two persisted orders, got %d", f.orders.createCnt)
	}
	if got := f.productQuantity(t, "product-2"); got != 2 {
		t.Fatalf("expected stock decremented twice, quantity=%d", got)
	}
}

func TestCreatorExecute_Rejections(t *testing.T) {
	cases := []struct {
		name string
		req  domain.OrderRequest
		want error
	}{
		{
			name: "unknown customer",
			req: domain.OrderRequest{
				CustomerID: "ghost",
				Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
			},
			want: domain.ErrInvalidCustomer,
		},
		{
			name: "unknown product",
			req: domain.OrderRequest{
				CustomerID: "customer-1",
				Items: []domain.OrderRequestItem{
					{ProductID: "product-1", Qty: 1},
					{ProductID: "ghost", Qty: 1},
				},
			},
			want: domain.ErrInvalidProduct,
		},
		{
			name: "insufficient stock",
			req: domain.OrderRequest{
				CustomerID: "customer-1",
				Items:      []domain.OrderRequestItem{{ProductID: "product-2", Qty: 5}},
			},
			want: domain.ErrInsufficientStock,
		},
		{
			name: "duplicate product",
			req: domain.OrderRequest{
				CustomerID: "customer-1",
				Items: []domain.OrderRequestItem{
					{ProductID: "product-1", Qty: 1},
					{ProductID: "product-1", Qty: 2},
				},
			},
			want: domain.ErrDuplicateProduct,
		},
		{
			name: "empty customer id",
			req: domain.OrderRequest{
				Items: []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
			},
			want: domain.ErrCustomerRequired,
		},
		{
			name: "zero qty",
			req: domain.OrderRequest{
				CustomerID: "customer-1",
				Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 0}},
			},
			want: domain.ErrItemQtyInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCreatorFixture(t)

			_, err := f.creator.Execute(tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Execute() error = %v, want %v", err, tc.want)
			}

			// Отклонение не оставляет побочных эффектов.
			if f.orders.createCnt != 0 {
				t.Fatalf("expected no persisted orders, got %d", f.orders.createCnt)
			}
			if len(f.catalog.updates) != 0 {
				t.Fatalf("expected no stock writes, got %d", len(f.catalog.updates))
			}
			if got := f.productQuantity(t, "product-1"); got != 10 {
				t.Fatalf("product-1 stock changed on rejection: %d", got)
			}
			if got := f.productQuantity(t, "product-2"); got != 4 {
				t.Fatalf("product-2 stock changed on rejection: %d", got)
			}
			if len(f.events.orders) != 0 {
				t.Fatalf("expected no published events, got %d", len(f.events.orders))
			}
		})
	}
}

func TestCreatorExecute_MixedValidAndInvalidItems(t *testing.T) {
	f := newCreatorFixture(t)

	// Первая позиция валидна, вторая просит больше остатка: весь запрос
	// отклоняется без частичного списания.
	_, err := f.creator.Execute(domain.OrderRequest{
		CustomerID: "customer-1",
		Items: []domain.OrderRequestItem{
			{ProductID: "product-1", Qty: 1},
			{ProductID: "product-2", Qty: 100},
		},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	if got := f.productQuantity(t, "product-1"); got != 10 {
		t.Fatalf("expected no partial decrement, product-1 quantity=%d", got)
	}
	if f.orders.createCnt != 0 {
		t.Fatal("expected no persisted orders")
	}
}

func TestCreatorExecute_CollaboratorErrors(t *testing.T) {
	infraErr := errors.New("connection refused")

	t.Run("customer lookup failure propagates", func(t *testing.T) {
		f := newCreatorFixture(t)
		creator := NewCreator(failingCustomers{err: infraErr}, f.catalog, f.orders, f.events, nil, nil)

		_, err := creator.Execute(domain.OrderRequest{
			CustomerID: "customer-1",
			Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
		})
		if !errors.Is(err, infraErr) {
			t.Fatalf("expected infra error, got %v", err)
		}
		if domain.IsValidationError(err) {
			t.Fatal("infra error must not be classified as validation error")
		}
	})

	t.Run("catalog read failure propagates", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.catalog.findErr = infraErr

		_, err := f.creator.Execute(domain.OrderRequest{
			CustomerID: "customer-1",
			Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
		})
		if !errors.Is(err, infraErr) {
			t.Fatalf("expected infra error, got %v", err)
		}
	})

	t.Run("order persist failure propagates", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.orders.createErr = infraErr

		_, err := f.creator.Execute(domain.OrderRequest{
			CustomerID: "customer-1",
			Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
		})
		if !errors.Is(err, infraErr) {
			t.Fatalf("expected infra error, got %v", err)
		}
		if len(f.catalog.updates) != 0 {
			t.Fatal("expected no stock writes after failed persist")
		}
	})

	t.Run("stock write failure propagates", func(t *testing.T) {
		f := newCreatorFixture(t)
		f.catalog.updateErr = infraErr

		_, err := f.creator.Execute(domain.OrderRequest{
			CustomerID: "customer-1",
			Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
		})
		if !errors.Is(err, infraErr) {
			t.Fatalf("expected infra error, got %v", err)
		}
		if len(f.events.orders) != 0 {
			t.Fatal("expected no published events after failed stock write")
		}
	})
}

func TestCreatorExecute_EventPublishFailureIsNotFatal(t *testing.T) {
	f := newCreatorFixture(t)
	f.events.err = errors.New("broker unavailable")

	order, err := f.creator.Execute(domain.OrderRequest{
		CustomerID: "customer-1",
		Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if order.ID == "" {
		t.Fatal("expected created order despite publish failure")
	}
}

func TestCreatorExecute_NilEventSink(t *testing.T) {
	f := newCreatorFixture(t)
	creator := NewCreator(f.customers, f.catalog, f.orders, nil, nil, nil)

	if _, err := creator.Execute(domain.OrderRequest{
		CustomerID: "customer-1",
		Items:      []domain.OrderRequestItem{{ProductID: "product-1", Qty: 1}},
	}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestRejectionReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: domain.ErrInvalidCustomer, want: "invalid_customer"},
		{err: domain.ErrInvalidProduct, want: "invalid_product"},
		{err: domain.ErrInsufficientStock, want: "insufficient_stock"},
		{err: domain.ErrDuplicateProduct, want: "duplicate_product"},
		{err: domain.ErrItemsRequired, want: "bad_request"},
	}

	for _, tc := range cases {
		if got := rejectionReason(tc.err); got != tc.want {
			t.Errorf("rejectionReason(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
