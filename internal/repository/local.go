package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"autoparts/internal/model"
	"autoparts/internal/seed"
)

// Collection names, stored under the configured key prefix.
const (
	colCategories = "categories"
	colSuppliers  = "suppliers"
	colProducts   = "products"
	colShops      = "shops"
	colInventory  = "inventory"
	colAlerts     = "alerts"
	colSales      = "sales"
	colSaleItems  = "sale_items"
	colReorders   = "reorder_requests"
	keyInitFlag   = "initialized"
)

var collections = []string{
	colCategories, colSuppliers, colProducts, colShops, colInventory,
	colAlerts, colSales, colSaleItems, colReorders,
}

// LocalStore keeps every entity collection as one JSON array per Redis key.
// Writes are read-modify-write under a process-local mutex; multi-collection
// writes go out in a single MULTI/EXEC.
type LocalStore struct {
	rdb    *redis.Client
	prefix string
	mu     sync.Mutex
}

func NewLocalStore(rdb *redis.Client, prefix string) *LocalStore {
	return &LocalStore{rdb: rdb, prefix: prefix}
}

var _ Store = (*LocalStore)(nil)

func (l *LocalStore) key(name string) string { return l.prefix + name }

func (l *LocalStore) Ping(ctx context.Context) error { return l.rdb.Ping(ctx).Err() }

// load reads one collection. A missing key is an empty collection, and so is
// a value that no longer parses.
func load[T any](ctx context.Context, l *LocalStore, name string) ([]T, error) {
	raw, err := l.rdb.Get(ctx, l.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", l.key(name)).Msg("fallback: unreadable collection, treating as empty")
		return nil, nil
	}
	return out, nil
}

// save writes the given collections atomically.
func (l *LocalStore) save(ctx context.Context, cols map[string]any) error {
	payloads := make(map[string][]byte, len(cols))
	for name, v := range cols {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("fallback: encode %s: %w", name, err)
		}
		payloads[name] = b
	}
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, b := range payloads {
			pipe.Set(ctx, l.key(name), b, 0)
		}
		return nil
	})
	return err
}

func findIndex[T any](items []T, match func(*T) bool) int {
	for i := range items {
		if match(&items[i]) {
			return i
		}
	}
	return -1
}

func byName[T any](name func(*T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(strings.ToLower(name(&a)), strings.ToLower(name(&b))) }
}

func newestFirst(a, b time.Time) int { return b.Compare(a) }

// ── Lifecycle ─────────────────────────────────────────────────────────────────

func (l *LocalStore) Initialized(ctx context.Context) (bool, error) {
	n, err := l.rdb.Exists(ctx, l.key(keyInitFlag)).Result()
	return n > 0, err
}

// Init seeds the store with generate() unless it is already initialized.
// It reports whether seeding happened.
func (l *LocalStore) Init(ctx context.Context, generate func() seed.Dataset) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ok, err := l.Initialized(ctx)
	if err != nil || ok {
		return false, err
	}
	ds := generate()
	err = l.save(ctx, map[string]any{
		colCategories: ds.Categories,
		colSuppliers:  ds.Suppliers,
		colProducts:   ds.Products,
		colShops:      ds.Shops,
		colInventory:  ds.Inventory,
		colAlerts:     ds.Alerts,
		colSales:      ds.Sales,
		colSaleItems:  ds.SaleItems,
		colReorders:   ds.Reorders,
	})
	if err != nil {
		return false, err
	}
	if err := l.rdb.Set(ctx, l.key(keyInitFlag), "true", 0).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Teardown removes every collection and the initialized flag.
func (l *LocalStore) Teardown(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]string, 0, len(collections)+1)
	for _, c := range collections {
		keys = append(keys, l.key(c))
	}
	keys = append(keys, l.key(keyInitFlag))
	return l.rdb.Del(ctx, keys...).Err()
}

// Reset tears the store down and seeds it again.
func (l *LocalStore) Reset(ctx context.Context, generate func() seed.Dataset) error {
	if err := l.Teardown(ctx); err != nil {
		return err
	}
	_, err := l.Init(ctx, generate)
	return err
}

// Counts reports the number of records per collection.
func (l *LocalStore) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(collections))
	for _, c := range collections {
		rows, err := load[json.RawMessage](ctx, l, c)
		if err != nil {
			return nil, err
		}
		out[c] = len(rows)
	}
	return out, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (l *LocalStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	out, err := load[model.Category](ctx, l, colCategories)
	slices.SortStableFunc(out, byName(func(c *model.Category) string { return c.Name }))
	return out, err
}

func (l *LocalStore) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	rows, err := load[model.Category](ctx, l, colCategories)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(c *model.Category) bool { return c.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	return &rows[i], nil
}

func (l *LocalStore) CreateCategory(ctx context.Context, c *model.Category) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Category](ctx, l, colCategories)
	if err != nil {
		return err
	}
	stampCreated(&c.ID, &c.CreatedAt, "cat")
	return l.save(ctx, map[string]any{colCategories: append(rows, *c)})
}

func (l *LocalStore) UpdateCategory(ctx context.Context, c *model.Category) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Category](ctx, l, colCategories)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *model.Category) bool { return x.ID == c.ID })
	if i < 0 {
		return ErrNotFound
	}
	rows[i].Name, rows[i].Description = c.Name, c.Description
	*c = rows[i]
	return l.save(ctx, map[string]any{colCategories: rows})
}

func (l *LocalStore) DeleteCategory(ctx context.Context, id string) error {
	return deleteByID(ctx, l, colCategories, func(c *model.Category) string { return c.ID }, id)
}

func deleteByID[T any](ctx context.Context, l *LocalStore, col string, idOf func(*T) string, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[T](ctx, l, col)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *T) bool { return idOf(x) == id })
	if i < 0 {
		return ErrNotFound
	}
	return l.save(ctx, map[string]any{col: slices.Delete(rows, i, i+1)})
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (l *LocalStore) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	out, err := load[model.Supplier](ctx, l, colSuppliers)
	slices.SortStableFunc(out, byName(func(s *model.Supplier) string { return s.Name }))
	return out, err
}

func (l *LocalStore) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	rows, err := load[model.Supplier](ctx, l, colSuppliers)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(s *model.Supplier) bool { return s.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	return &rows[i], nil
}

func (l *LocalStore) CreateSupplier(ctx context.Context, s *model.Supplier) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Supplier](ctx, l, colSuppliers)
	if err != nil {
		return err
	}
	stampCreated(&s.ID, &s.CreatedAt, "sup")
	return l.save(ctx, map[string]any{colSuppliers: append(rows, *s)})
}

func (l *LocalStore) UpdateSupplier(ctx context.Context, s *model.Supplier) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Supplier](ctx, l, colSuppliers)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *model.Supplier) bool { return x.ID == s.ID })
	if i < 0 {
		return ErrNotFound
	}
	s.CreatedAt = rows[i].CreatedAt
	rows[i] = *s
	return l.save(ctx, map[string]any{colSuppliers: rows})
}

func (l *LocalStore) DeleteSupplier(ctx context.Context, id string) error {
	return deleteByID(ctx, l, colSuppliers, func(s *model.Supplier) string { return s.ID }, id)
}

// ── Products ──────────────────────────────────────────────────────────────────

type productJoin struct {
	categories map[string]*model.Category
	suppliers  map[string]*model.Supplier
}

func (l *LocalStore) productJoin(ctx context.Context) (productJoin, error) {
	cats, err := load[model.Category](ctx, l, colCategories)
	if err != nil {
		return productJoin{}, err
	}
	sups, err := load[model.Supplier](ctx, l, colSuppliers)
	if err != nil {
		return productJoin{}, err
	}
	return productJoin{categories: indexBy(cats, categoryID), suppliers: indexBy(sups, supplierID)}, nil
}

func (j productJoin) detail(p model.Product) model.ProductDetail {
	var cat *model.Category
	var sup *model.Supplier
	if p.CategoryID != nil {
		cat = j.categories[*p.CategoryID]
	}
	if p.SupplierID != nil {
		sup = j.suppliers[*p.SupplierID]
	}
	return buildProductDetail(p, cat, sup)
}

func (l *LocalStore) ListProducts(ctx context.Context) ([]model.ProductDetail, error) {
	rows, err := load[model.Product](ctx, l, colProducts)
	if err != nil {
		return nil, err
	}
	j, err := l.productJoin(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rows, byName(func(p *model.Product) string { return p.Name }))
	out := make([]model.ProductDetail, 0, len(rows))
	for _, p := range rows {
		out = append(out, j.detail(p))
	}
	return out, nil
}

func (l *LocalStore) GetProduct(ctx context.Context, id string) (*model.ProductDetail, error) {
	rows, err := load[model.Product](ctx, l, colProducts)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(p *model.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	j, err := l.productJoin(ctx)
	if err != nil {
		return nil, err
	}
	d := j.detail(rows[i])
	return &d, nil
}

func (l *LocalStore) CreateProduct(ctx context.Context, p *model.Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Product](ctx, l, colProducts)
	if err != nil {
		return err
	}
	stampCreated(&p.ID, &p.CreatedAt, "prod")
	return l.save(ctx, map[string]any{colProducts: append(rows, *p)})
}

func (l *LocalStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Product](ctx, l, colProducts)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *model.Product) bool { return x.ID == p.ID })
	if i < 0 {
		return ErrNotFound
	}
	p.CreatedAt = rows[i].CreatedAt
	rows[i] = *p
	return l.save(ctx, map[string]any{colProducts: rows})
}

func (l *LocalStore) DeleteProduct(ctx context.Context, id string) error {
	return deleteByID(ctx, l, colProducts, func(p *model.Product) string { return p.ID }, id)
}

// ── Shops ─────────────────────────────────────────────────────────────────────

func (l *LocalStore) ListShops(ctx context.Context) ([]model.Shop, error) {
	out, err := load[model.Shop](ctx, l, colShops)
	slices.SortStableFunc(out, byName(func(s *model.Shop) string { return s.Name }))
	return out, err
}

func (l *LocalStore) GetShop(ctx context.Context, id string) (*model.Shop, error) {
	rows, err := load[model.Shop](ctx, l, colShops)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(s *model.Shop) bool { return s.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	return &rows[i], nil
}

func (l *LocalStore) CreateShop(ctx context.Context, s *model.Shop) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Shop](ctx, l, colShops)
	if err != nil {
		return err
	}
	stampCreated(&s.ID, &s.CreatedAt, "shop")
	return l.save(ctx, map[string]any{colShops: append(rows, *s)})
}

func (l *LocalStore) UpdateShop(ctx context.Context, s *model.Shop) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Shop](ctx, l, colShops)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *model.Shop) bool { return x.ID == s.ID })
	if i < 0 {
		return ErrNotFound
	}
	s.CreatedAt = rows[i].CreatedAt
	rows[i] = *s
	return l.save(ctx, map[string]any{colShops: rows})
}

// ── Inventory ─────────────────────────────────────────────────────────────────

type stockJoin struct {
	products map[string]*model.Product
	shops    map[string]*model.Shop
}

func (l *LocalStore) stockJoin(ctx context.Context) (stockJoin, error) {
	prods, err := load[model.Product](ctx, l, colProducts)
	if err != nil {
		return stockJoin{}, err
	}
	shops, err := load[model.Shop](ctx, l, colShops)
	if err != nil {
		return stockJoin{}, err
	}
	return stockJoin{products: indexBy(prods, productID), shops: indexBy(shops, shopID)}, nil
}

func (l *LocalStore) ListInventory(ctx context.Context) ([]model.InventoryDetail, error) {
	rows, err := load[model.Inventory](ctx, l, colInventory)
	if err != nil {
		return nil, err
	}
	j, err := l.stockJoin(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rows, func(a, b model.Inventory) int {
		return cmp.Or(strings.Compare(a.ShopID, b.ShopID), strings.Compare(a.ProductID, b.ProductID))
	})
	out := make([]model.InventoryDetail, 0, len(rows))
	for _, inv := range rows {
		out = append(out, buildInventoryDetail(inv, j.products[inv.ProductID], j.shops[inv.ShopID]))
	}
	return out, nil
}

func (l *LocalStore) GetInventory(ctx context.Context, id string) (*model.InventoryDetail, error) {
	rows, err := load[model.Inventory](ctx, l, colInventory)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(x *model.Inventory) bool { return x.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	j, err := l.stockJoin(ctx)
	if err != nil {
		return nil, err
	}
	d := buildInventoryDetail(rows[i], j.products[rows[i].ProductID], j.shops[rows[i].ShopID])
	return &d, nil
}

func (l *LocalStore) CreateInventory(ctx context.Context, inv *model.Inventory) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Inventory](ctx, l, colInventory)
	if err != nil {
		return err
	}
	dup := findIndex(rows, func(x *model.Inventory) bool {
		return x.ProductID == inv.ProductID && x.ShopID == inv.ShopID
	})
	if dup >= 0 {
		return fmt.Errorf("%w: inventory for product %s at shop %s already exists", ErrRejected, inv.ProductID, inv.ShopID)
	}
	if inv.ID == "" {
		inv.ID = fmt.Sprintf("inv-%s-%s", inv.ShopID, inv.ProductID)
	}
	return l.save(ctx, map[string]any{colInventory: append(rows, *inv)})
}

func (l *LocalStore) UpdateInventory(ctx context.Context, inv *model.Inventory) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.Inventory](ctx, l, colInventory)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *model.Inventory) bool { return x.ID == inv.ID })
	if i < 0 {
		return ErrNotFound
	}
	row := &rows[i]
	row.Quantity = inv.Quantity
	row.ReorderLevel = inv.ReorderLevel
	row.ReorderQuantity = inv.ReorderQuantity
	row.Location = inv.Location
	row.LastRestocked = inv.LastRestocked
	*inv = *row
	return l.save(ctx, map[string]any{colInventory: rows})
}

// ── Alerts ────────────────────────────────────────────────────────────────────

func (l *LocalStore) ListAlerts(ctx context.Context) ([]model.AlertDetail, error) {
	rows, err := load[model.StockAlert](ctx, l, colAlerts)
	if err != nil {
		return nil, err
	}
	j, err := l.stockJoin(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rows, func(a, b model.StockAlert) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	out := make([]model.AlertDetail, 0, len(rows))
	for _, a := range rows {
		out = append(out, buildAlertDetail(a, j.products[a.ProductID], j.shops[a.ShopID]))
	}
	return out, nil
}

func (l *LocalStore) CreateAlert(ctx context.Context, a *model.StockAlert) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.StockAlert](ctx, l, colAlerts)
	if err != nil {
		return err
	}
	stampCreated(&a.ID, &a.CreatedAt, "alert")
	return l.save(ctx, map[string]any{colAlerts: append(rows, *a)})
}

func (l *LocalStore) AcknowledgeAlert(ctx context.Context, id, by string, at time.Time) (*model.StockAlert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.StockAlert](ctx, l, colAlerts)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(a *model.StockAlert) bool { return a.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	a := rows[i]
	if a.Acknowledged {
		return &a, nil
	}
	a.Acknowledged = true
	a.AcknowledgedBy = &by
	a.AcknowledgedAt = &at
	rows[i] = a
	if err := l.save(ctx, map[string]any{colAlerts: rows}); err != nil {
		return nil, err
	}
	return &a, nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func (l *LocalStore) ListSales(ctx context.Context) ([]model.SaleDetail, error) {
	rows, err := load[model.Sale](ctx, l, colSales)
	if err != nil {
		return nil, err
	}
	shops, err := load[model.Shop](ctx, l, colShops)
	if err != nil {
		return nil, err
	}
	shopIdx := indexBy(shops, shopID)
	slices.SortStableFunc(rows, func(a, b model.Sale) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	out := make([]model.SaleDetail, 0, len(rows))
	for _, s := range rows {
		out = append(out, buildSaleDetail(s, shopIdx[s.ShopID]))
	}
	return out, nil
}

func (l *LocalStore) GetSale(ctx context.Context, id string) (*model.SaleDetail, error) {
	rows, err := load[model.Sale](ctx, l, colSales)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(s *model.Sale) bool { return s.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	items, err := load[model.SaleItem](ctx, l, colSaleItems)
	if err != nil {
		return nil, err
	}
	j, err := l.stockJoin(ctx)
	if err != nil {
		return nil, err
	}
	d := buildSaleDetail(rows[i], j.shops[rows[i].ShopID])
	d.Items = []model.SaleItemDetail{}
	for _, it := range items {
		if it.SaleID == id {
			d.Items = append(d.Items, buildSaleItemDetail(it, j.products[it.ProductID]))
		}
	}
	return &d, nil
}

// CreateSale appends the sale and its items and decrements stock at the
// sale's shop, never below zero.
func (l *LocalStore) CreateSale(ctx context.Context, s *model.Sale, items []model.SaleItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sales, err := load[model.Sale](ctx, l, colSales)
	if err != nil {
		return err
	}
	saleItems, err := load[model.SaleItem](ctx, l, colSaleItems)
	if err != nil {
		return err
	}
	inv, err := load[model.Inventory](ctx, l, colInventory)
	if err != nil {
		return err
	}

	prepareSale(s, items)
	for _, it := range items {
		i := findIndex(inv, func(x *model.Inventory) bool {
			return x.ProductID == it.ProductID && x.ShopID == s.ShopID
		})
		if i >= 0 {
			inv[i].Quantity = max(inv[i].Quantity-it.Quantity, 0)
		}
	}
	return l.save(ctx, map[string]any{
		colSales:     append(sales, *s),
		colSaleItems: append(saleItems, items...),
		colInventory: inv,
	})
}

// ── Reorders ──────────────────────────────────────────────────────────────────

type reorderJoin struct {
	stockJoin
	suppliers map[string]*model.Supplier
}

func (l *LocalStore) reorderJoin(ctx context.Context) (reorderJoin, error) {
	sj, err := l.stockJoin(ctx)
	if err != nil {
		return reorderJoin{}, err
	}
	sups, err := load[model.Supplier](ctx, l, colSuppliers)
	if err != nil {
		return reorderJoin{}, err
	}
	return reorderJoin{stockJoin: sj, suppliers: indexBy(sups, supplierID)}, nil
}

func (j reorderJoin) detail(r model.ReorderRequest) model.ReorderDetail {
	return buildReorderDetail(r, j.products[r.ProductID], j.suppliers[r.SupplierID], j.shops[r.ShopID])
}

func (l *LocalStore) ListReorders(ctx context.Context) ([]model.ReorderDetail, error) {
	rows, err := load[model.ReorderRequest](ctx, l, colReorders)
	if err != nil {
		return nil, err
	}
	j, err := l.reorderJoin(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rows, func(a, b model.ReorderRequest) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	out := make([]model.ReorderDetail, 0, len(rows))
	for _, r := range rows {
		out = append(out, j.detail(r))
	}
	return out, nil
}

func (l *LocalStore) GetReorder(ctx context.Context, id string) (*model.ReorderDetail, error) {
	rows, err := load[model.ReorderRequest](ctx, l, colReorders)
	if err != nil {
		return nil, err
	}
	i := findIndex(rows, func(r *model.ReorderRequest) bool { return r.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	j, err := l.reorderJoin(ctx)
	if err != nil {
		return nil, err
	}
	d := j.detail(rows[i])
	return &d, nil
}

func (l *LocalStore) CreateReorder(ctx context.Context, r *model.ReorderRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows, err := load[model.ReorderRequest](ctx, l, colReorders)
	if err != nil {
		return err
	}
	stampCreated(&r.ID, &r.CreatedAt, "reorder")
	if r.Status == "" {
		r.Status = model.ReorderPending
	}
	return l.save(ctx, map[string]any{colReorders: append(rows, *r)})
}

func (l *LocalStore) TransitionReorder(ctx context.Context, r *model.ReorderRequest, from model.ReorderStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := load[model.ReorderRequest](ctx, l, colReorders)
	if err != nil {
		return err
	}
	i := findIndex(rows, func(x *model.ReorderRequest) bool { return x.ID == r.ID })
	if i < 0 {
		return ErrNotFound
	}
	if rows[i].Status != from {
		return ErrStaleStatus
	}
	row := &rows[i]
	row.Status = r.Status
	row.OrderedDate, row.ExpectedDate, row.ReceivedDate = r.OrderedDate, r.ExpectedDate, r.ReceivedDate
	writes := map[string]any{colReorders: rows}

	if r.Status == model.ReorderReceived {
		inv, err := load[model.Inventory](ctx, l, colInventory)
		if err != nil {
			return err
		}
		k := findIndex(inv, func(x *model.Inventory) bool {
			return x.ProductID == row.ProductID && x.ShopID == row.ShopID
		})
		if k >= 0 {
			inv[k].Quantity += row.Quantity
			inv[k].LastRestocked = row.ReceivedDate
			writes[colInventory] = inv
		}
	}
	return l.save(ctx, writes)
}
