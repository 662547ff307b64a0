package service

import (
	"context"
	"sync"
	"time"

	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/rule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories. They mirror the store behaviour the services lean
// on: unique keys, record-not-found errors and the model hooks that do not need a database.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ repository.Pagination) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return rule.Duplicate("email")
		}
		if u.Username == user.Username {
			return rule.Duplicate("username")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.users[id].Password = hash
	return nil
}

func (r *fakeUserRepo) UpdateTokenVersion(_ context.Context, id uuid.UUID, version string) error {
	r.users[id].TokenVersion = version
	return nil
}

type fakeRoleRepo struct {
	roles []model.Role
}

func (r *fakeRoleRepo) FindByCode(code string) (*model.Role, error) {
	for i := range r.roles {
		if r.roles[i].Code == code {
			return &r.roles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) AssignPrivileges(role *model.Role, privileges []model.Privilege) error {
	role.Privileges = privileges
	return nil
}

func (r *fakeRoleRepo) SeedDefaults() error { return nil }

type fakeCatalogRepo struct {
	categories []model.Category
	brands     []model.Brand
	colors     []model.Color
}

func (r *fakeCatalogRepo) slugs(cs []model.Category, bs []model.Brand) map[string]bool {
	taken := map[string]bool{}
	for _, c := range cs {
		taken[c.Slug] = true
	}
	for _, b := range bs {
		taken[b.Slug] = true
	}
	return taken
}

func (r *fakeCatalogRepo) CreateCategory(ctx context.Context, c *model.Category) error {
	taken := r.slugs(r.categories, nil)
	if c.Slug == "" {
		slug, err := rule.UniqueSlug(ctx, c.Name, func(_ context.Context, s string) (bool, error) { return taken[s], nil })
		if err != nil {
			return err
		}
		c.Slug = slug
	} else if taken[c.Slug] {
		return rule.Duplicate("slug")
	}
	c.ID = uuid.New()
	r.categories = append(r.categories, *c)
	return nil
}

func (r *fakeCatalogRepo) FindCategories(_ context.Context, _ repository.Pagination) ([]model.Category, int64, error) {
	return r.categories, int64(len(r.categories)), nil
}

func (r *fakeCatalogRepo) FindCategoriesByIDs(_ context.Context, ids []uuid.UUID) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) CreateBrand(ctx context.Context, b *model.Brand) error {
	taken := r.slugs(nil, r.brands)
	if b.Slug == "" {
		slug, err := rule.UniqueSlug(ctx, b.Name, func(_ context.Context, s string) (bool, error) { return taken[s], nil })
		if err != nil {
			return err
		}
		b.Slug = slug
	} else if taken[b.Slug] {
		return rule.Duplicate("slug")
	}
	b.ID = uuid.New()
	r.brands = append(r.brands, *b)
	return nil
}

func (r *fakeCatalogRepo) FindBrands(_ context.Context, _ repository.Pagination) ([]model.Brand, int64, error) {
	return r.brands, int64(len(r.brands)), nil
}

func (r *fakeCatalogRepo) FindBrandByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	for i := range r.brands {
		if r.brands[i].ID == id {
			return &r.brands[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) CreateColor(_ context.Context, c *model.Color) error {
	for _, existing := range r.colors {
		if existing.Name == c.Name {
			return rule.Duplicate("name")
		}
	}
	c.ID = uuid.New()
	r.colors = append(r.colors, *c)
	return nil
}

func (r *fakeCatalogRepo) FindColors(_ context.Context) ([]model.Color, error) {
	return r.colors, nil
}

type fakeProductRepo struct {
	products   map[uuid.UUID]*model.Product
	variants   map[uuid.UUID]*model.Variant
	images     []model.Image
	categories map[uuid.UUID][]uuid.UUID
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:   map[uuid.UUID]*model.Product{},
		variants:   map[uuid.UUID]*model.Variant{},
		categories: map[uuid.UUID][]uuid.UUID{},
	}
}

// seedVariant stores a product with one variant priced at price.
func (r *fakeProductRepo) seedVariant(price string, categoryIDs ...uuid.UUID) *model.Variant {
	product := &model.Product{BaseModel: model.BaseModel{ID: uuid.New()}, Name: "Tee " + uuid.NewString()[:8]}
	variant := &model.Variant{
		BaseModel: model.BaseModel{ID: uuid.New()},
		ProductID: product.ID,
		SKU:       "SKU-" + uuid.NewString()[:8],
		Price:     decimal.RequireFromString(price),
		Stock:     10,
	}
	r.products[product.ID] = product
	r.variants[variant.ID] = variant
	r.categories[product.ID] = categoryIDs
	return variant
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return rule.Duplicate("name")
		}
	}
	p.ID = uuid.New()
	r.products[p.ID] = p
	for _, c := range p.Categories {
		r.categories[p.ID] = append(r.categories[p.ID], c.ID)
	}
	return nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ repository.Pagination) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) CreateVariant(_ context.Context, v *model.Variant) error {
	for _, existing := range r.variants {
		if existing.SKU == v.SKU {
			return rule.Duplicate("sku")
		}
	}
	v.ID = uuid.New()
	r.variants[v.ID] = v
	return nil
}

func (r *fakeProductRepo) FindVariantByID(_ context.Context, id uuid.UUID) (*model.Variant, error) {
	if v, ok := r.variants[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) CreateImage(_ context.Context, img *model.Image) error {
	img.ID = uuid.New()
	r.images = append(r.images, *img)
	return nil
}

func (r *fakeProductRepo) CategoryIDs(_ context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	return r.categories[productID], nil
}

func (r *fakeProductRepo) CountLowStockVariants(_ context.Context, threshold int) (int64, error) {
	var n int64
	for _, v := range r.variants {
		if v.Stock < threshold {
			n++
		}
	}
	return n, nil
}

type fakeOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	items    map[uuid.UUID][]model.OrderItem
	payments map[uuid.UUID]*model.Payment
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[uuid.UUID]*model.Order{},
		items:    map[uuid.UUID][]model.OrderItem{},
		payments: map[uuid.UUID]*model.Payment{},
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	r.orders[o.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *o
	out.Items = append([]model.OrderItem(nil), r.items[id]...)
	out.Payment = r.payments[id]
	return &out, nil
}

func (r *fakeOrderRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) AddItem(_ context.Context, item *model.OrderItem) error {
	if err := item.BeforeSave(nil); err != nil {
		return err
	}
	item.ID = uuid.New()
	r.items[item.OrderID] = append(r.items[item.OrderID], *item)
	return nil
}

func (r *fakeOrderRepo) FindItems(_ context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	return r.items[orderID], nil
}

func (r *fakeOrderRepo) UpdateTotal(_ context.Context, orderID uuid.UUID, total decimal.Decimal) error {
	r.orders[orderID].TotalAmount = total
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	r.orders[orderID].Status = status
	return nil
}

func (r *fakeOrderRepo) SavePayment(_ context.Context, p *model.Payment) error {
	if err := rule.CheckPaymentAmount(p.Amount, r.orders[p.OrderID].TotalAmount); err != nil {
		return err
	}
	if existing, ok := r.payments[p.OrderID]; ok && existing.ID != p.ID {
		return rule.Duplicate("order_id")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments[p.OrderID] = p
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	delete(r.items, id)
	delete(r.payments, id)
	return nil
}

func (r *fakeOrderRepo) Stats(_ context.Context) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{Revenue: decimal.Zero}
	for _, o := range r.orders {
		stats.TotalOrders++
		if o.Status == model.OrderPaid {
			stats.PaidOrders++
			stats.Revenue = stats.Revenue.Add(o.TotalAmount)
		}
	}
	return stats, nil
}

// Transaction only rolls back new orders; that is all the services depend on here.
func (r *fakeOrderRepo) Transaction(ctx context.Context, fn func(repository.OrderRepository) error) error {
	before := map[uuid.UUID]bool{}
	for id := range r.orders {
		before[id] = true
	}
	if err := fn(r); err != nil {
		for id := range r.orders {
			if !before[id] {
				_ = r.Delete(ctx, id)
			}
		}
		return err
	}
	return nil
}

type fakePromoRepo struct {
	promos []model.Promo
}

func (r *fakePromoRepo) Create(_ context.Context, p *model.Promo) error {
	if err := p.BeforeSave(nil); err != nil {
		return err
	}
	p.ID = uuid.New()
	r.promos = append(r.promos, *p)
	return nil
}

func (r *fakePromoRepo) FindAll(_ context.Context, _ repository.Pagination) ([]model.Promo, error) {
	return r.promos, nil
}

func (r *fakePromoRepo) FindActiveFor(_ context.Context, variantID, productID uuid.UUID, categoryIDs []uuid.UUID, now time.Time) ([]model.Promo, error) {
	match := func(id *uuid.UUID, want ...uuid.UUID) bool {
		if id == nil {
			return false
		}
		for _, w := range want {
			if *id == w {
				return true
			}
		}
		return false
	}
	var out []model.Promo
	for _, p := range r.promos {
		if !p.IsActive || !p.Window().Contains(now) {
			continue
		}
		if match(p.VariantID, variantID) || match(p.ProductID, productID) || match(p.CategoryID, categoryIDs...) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*model.Coupon
}

func newFakeCouponRepo(coupons ...*model.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: map[string]*model.Coupon{}}
	for _, c := range coupons {
		r.coupons[c.Code] = c
	}
	return r
}

func (r *fakeCouponRepo) Create(_ context.Context, c *model.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := c.BeforeSave(nil); err != nil {
		return err
	}
	if _, ok := r.coupons[c.Code]; ok {
		return rule.Duplicate("code")
	}
	c.ID = uuid.New()
	r.coupons[c.Code] = c
	return nil
}

func (r *fakeCouponRepo) FindByCode(_ context.Context, code string) (*model.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

// Redeem applies the same predicate as the conditional UPDATE, atomically.
func (r *fakeCouponRepo) Redeem(_ context.Context, code string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[code]
	if !ok || c.State().CanRedeem(now) != nil {
		return false, nil
	}
	c.UsedCount++
	return true, nil
}

type published struct {
	eventType, action, actorID string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(eventType, action, actorID string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{eventType, action, actorID})
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.action
	}
	return out
}
