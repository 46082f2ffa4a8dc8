package service

import (
	"context"
	"sync"

	"github.com/Manu2954/Buildora-sub000/internal/cache"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

// In-memory stand-ins for the Mongo repositories. They mirror the
// persistence semantics the services rely on (additive AddItem, upsert
// ReplaceCart, not-found sentinels) without a database.

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
	err   error // when set, every call fails with it
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartRepo) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cart, ok := f.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (f *fakeCartRepo) AddItem(_ context.Context, userID string, item domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cart, ok := f.carts[userID]
	if !ok {
		f.carts[userID] = &domain.Cart{UserID: userID, Items: []domain.CartItem{item}}
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].CartItemID == item.CartItemID {
			cart.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	cart.Items = append(cart.Items, item)
	return nil
}

func (f *fakeCartRepo) UpdateItemQuantity(_ context.Context, userID, cartItemID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cart, ok := f.carts[userID]
	if !ok {
		return repository.ErrItemNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].CartItemID == cartItemID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, userID, cartItemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cart, ok := f.carts[userID]
	if !ok {
		return repository.ErrCartNotFound
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.CartItemID != cartItemID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	return nil
}

func (f *fakeCartRepo) ReplaceCart(_ context.Context, userID string, items []domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cart, ok := f.carts[userID]
	if !ok {
		f.carts[userID] = &domain.Cart{UserID: userID, Items: items}
		return nil
	}
	cart.Items = items
	return nil
}

func (f *fakeCartRepo) DeleteCart(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.carts[userID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(f.carts, userID)
	return nil
}

type fakeProductRepo struct {
	mu        sync.Mutex
	products  map[string]*domain.Product
	createErr error
	created   []*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	m := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, product)
	if product.ID != "" {
		f.products[product.ID] = product
	}
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) SetActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.IsActive = active
	return nil
}

func (f *fakeProductRepo) AddReview(_ context.Context, productID string, review domain.Review, ratings domain.Ratings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Reviews = append(p.Reviews, review)
	p.Ratings = ratings
	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    []*domain.Order
	createErr error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = "order-1"
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string, page, limit int64) ([]*domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context, status domain.OrderStatus, page, limit int64) ([]*domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders, int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

type fakeOutboxRepo struct {
	mu        sync.Mutex
	events    []*domain.OutboxEvent
	insertErr error
}

func (f *fakeOutboxRepo) Insert(_ context.Context, event *domain.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) GetUnprocessed(_ context.Context, limit int64) ([]*domain.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events, nil
}

func (f *fakeOutboxRepo) MarkProcessed(_ context.Context, id string) error {
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*domain.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error { return nil }

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) List(_ context.Context, page, limit int64) ([]*domain.Company, int64, error) {
	return nil, 0, nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, company *domain.Company) error { return nil }
func (f *fakeCompanyRepo) Delete(_ context.Context, id string) error               { return nil }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	m := make(map[string]*domain.User, len(users))
	for _, u := range users {
		m[u.Email] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = "user-" + user.Email
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context, page, limit int64) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error { return nil }

// fakeCache misses on every read and records invalidations.
type fakeCache struct {
	mu      sync.Mutex
	deletes []string
}

func (f *fakeCache) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	return nil, cache.ErrCacheMiss
}

func (f *fakeCache) SetCart(_ context.Context, userID string, cart *domain.Cart) error { return nil }

func (f *fakeCache) DeleteCart(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, userID)
	return nil
}

func (f *fakeCache) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	return nil, cache.ErrCacheMiss
}

func (f *fakeCache) SetProduct(_ context.Context, productID string, product *domain.Product) error {
	return nil
}

func (f *fakeCache) DeleteProduct(_ context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, productID)
	return nil
}
