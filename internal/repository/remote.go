package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoparts/internal/model"
)

// RemoteStore reads and writes the persistent store through GORM.
type RemoteStore struct{ db *gorm.DB }

func NewRemoteStore(db *gorm.DB) *RemoteStore { return &RemoteStore{db: db} }

var _ Store = (*RemoteStore)(nil)

// Ping checks connectivity for the health endpoint.
func (r *RemoteStore) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// remoteErr maps driver errors onto the package sentinels. Anything left
// unmapped is treated as unavailability by the resolver.
func remoteErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 22: data exception, 23: integrity constraint violation
		if strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23") {
			return fmt.Errorf("%w: %s", ErrRejected, pgErr.Message)
		}
	}
	return err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return remoteErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, remoteErr(err)
}

func (r *RemoteStore) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, remoteErr(err)
	}
	return &c, nil
}

func (r *RemoteStore) CreateCategory(ctx context.Context, c *model.Category) error {
	stampCreated(&c.ID, &c.CreatedAt, "cat")
	return remoteErr(r.db.WithContext(ctx).Create(c).Error)
}

func (r *RemoteStore) UpdateCategory(ctx context.Context, c *model.Category) error {
	return affected(r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).
		Select("name", "description").Updates(c))
}

func (r *RemoteStore) DeleteCategory(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}))
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var out []model.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, remoteErr(err)
}

func (r *RemoteStore) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	var s model.Supplier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, remoteErr(err)
	}
	return &s, nil
}

func (r *RemoteStore) CreateSupplier(ctx context.Context, s *model.Supplier) error {
	stampCreated(&s.ID, &s.CreatedAt, "sup")
	return remoteErr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *RemoteStore) UpdateSupplier(ctx context.Context, s *model.Supplier) error {
	return affected(r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", s.ID).
		Select("name", "contact_person", "email", "phone", "address", "city", "state", "zip_code", "notes").
		Updates(s))
}

func (r *RemoteStore) DeleteSupplier(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Supplier{}))
}

// ── Products ──────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListProducts(ctx context.Context) ([]model.ProductDetail, error) {
	var rows []model.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("Supplier").Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	out := make([]model.ProductDetail, 0, len(rows))
	for _, p := range rows {
		out = append(out, buildProductDetail(p, p.Category, p.Supplier))
	}
	return out, nil
}

func (r *RemoteStore) GetProduct(ctx context.Context, id string) (*model.ProductDetail, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Preload("Category").Preload("Supplier").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, remoteErr(err)
	}
	d := buildProductDetail(p, p.Category, p.Supplier)
	return &d, nil
}

func (r *RemoteStore) CreateProduct(ctx context.Context, p *model.Product) error {
	stampCreated(&p.ID, &p.CreatedAt, "prod")
	return remoteErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *RemoteStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	return affected(r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).
		Select("name", "sku", "description", "brand", "part_number", "category_id", "supplier_id", "cost_price", "unit_price").
		Updates(p))
}

func (r *RemoteStore) DeleteProduct(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}))
}

// ── Shops ─────────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListShops(ctx context.Context) ([]model.Shop, error) {
	var out []model.Shop
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, remoteErr(err)
}

func (r *RemoteStore) GetShop(ctx context.Context, id string) (*model.Shop, error) {
	var s model.Shop
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, remoteErr(err)
	}
	return &s, nil
}

func (r *RemoteStore) CreateShop(ctx context.Context, s *model.Shop) error {
	stampCreated(&s.ID, &s.CreatedAt, "shop")
	return remoteErr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *RemoteStore) UpdateShop(ctx context.Context, s *model.Shop) error {
	return affected(r.db.WithContext(ctx).Model(&model.Shop{}).Where("id = ?", s.ID).
		Select("name", "location", "contact_email", "contact_phone", "address", "city", "state", "zip_code").
		Updates(s))
}

// ── Inventory ─────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListInventory(ctx context.Context) ([]model.InventoryDetail, error) {
	var rows []model.Inventory
	err := r.db.WithContext(ctx).Preload("Product").Preload("Shop").Order("shop_id, product_id").Find(&rows).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	out := make([]model.InventoryDetail, 0, len(rows))
	for _, inv := range rows {
		out = append(out, buildInventoryDetail(inv, inv.Product, inv.Shop))
	}
	return out, nil
}

func (r *RemoteStore) GetInventory(ctx context.Context, id string) (*model.InventoryDetail, error) {
	var inv model.Inventory
	if err := r.db.WithContext(ctx).Preload("Product").Preload("Shop").Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, remoteErr(err)
	}
	d := buildInventoryDetail(inv, inv.Product, inv.Shop)
	return &d, nil
}

func (r *RemoteStore) CreateInventory(ctx context.Context, inv *model.Inventory) error {
	stampCreated(&inv.ID, nil, "inv")
	return remoteErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error)
}

func (r *RemoteStore) UpdateInventory(ctx context.Context, inv *model.Inventory) error {
	return affected(r.db.WithContext(ctx).Model(&model.Inventory{}).Where("id = ?", inv.ID).
		Select("quantity", "reorder_level", "reorder_quantity", "location", "last_restocked").
		Updates(inv))
}

// ── Alerts ────────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListAlerts(ctx context.Context) ([]model.AlertDetail, error) {
	var rows []model.StockAlert
	err := r.db.WithContext(ctx).Preload("Product").Preload("Shop").Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	out := make([]model.AlertDetail, 0, len(rows))
	for _, a := range rows {
		out = append(out, buildAlertDetail(a, a.Product, a.Shop))
	}
	return out, nil
}

func (r *RemoteStore) CreateAlert(ctx context.Context, a *model.StockAlert) error {
	stampCreated(&a.ID, &a.CreatedAt, "alert")
	return remoteErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *RemoteStore) AcknowledgeAlert(ctx context.Context, id, by string, at time.Time) (*model.StockAlert, error) {
	db := r.db.WithContext(ctx)
	err := db.Model(&model.StockAlert{}).
		Where("id = ? AND acknowledged = ?", id, false).
		Updates(map[string]any{"acknowledged": true, "acknowledged_by": by, "acknowledged_at": at}).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	var a model.StockAlert
	if err := db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, remoteErr(err)
	}
	return &a, nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListSales(ctx context.Context) ([]model.SaleDetail, error) {
	var rows []model.Sale
	err := r.db.WithContext(ctx).Preload("Shop").Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	out := make([]model.SaleDetail, 0, len(rows))
	for _, s := range rows {
		out = append(out, buildSaleDetail(s, s.Shop))
	}
	return out, nil
}

func (r *RemoteStore) GetSale(ctx context.Context, id string) (*model.SaleDetail, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Shop").Preload("Items.Product").Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	items := s.Items
	d := buildSaleDetail(s, s.Shop)
	d.Items = make([]model.SaleItemDetail, 0, len(items))
	for _, it := range items {
		d.Items = append(d.Items, buildSaleItemDetail(it, it.Product))
	}
	return &d, nil
}

func (r *RemoteStore) CreateSale(ctx context.Context, s *model.Sale, items []model.SaleItem) error {
	prepareSale(s, items)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
				return err
			}
		}
		for _, it := range items {
			err := tx.Model(&model.Inventory{}).
				Where("product_id = ? AND shop_id = ?", it.ProductID, s.ShopID).
				Update("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", it.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	return remoteErr(err)
}

// ── Reorders ──────────────────────────────────────────────────────────────────

func (r *RemoteStore) ListReorders(ctx context.Context) ([]model.ReorderDetail, error) {
	var rows []model.ReorderRequest
	err := r.db.WithContext(ctx).Preload("Product").Preload("Supplier").Preload("Shop").
		Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	out := make([]model.ReorderDetail, 0, len(rows))
	for _, rr := range rows {
		out = append(out, buildReorderDetail(rr, rr.Product, rr.Supplier, rr.Shop))
	}
	return out, nil
}

func (r *RemoteStore) GetReorder(ctx context.Context, id string) (*model.ReorderDetail, error) {
	var rr model.ReorderRequest
	err := r.db.WithContext(ctx).Preload("Product").Preload("Supplier").Preload("Shop").
		Where("id = ?", id).First(&rr).Error
	if err != nil {
		return nil, remoteErr(err)
	}
	d := buildReorderDetail(rr, rr.Product, rr.Supplier, rr.Shop)
	return &d, nil
}

func (r *RemoteStore) CreateReorder(ctx context.Context, rr *model.ReorderRequest) error {
	stampCreated(&rr.ID, &rr.CreatedAt, "reorder")
	if rr.Status == "" {
		rr.Status = model.ReorderPending
	}
	return remoteErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(rr).Error)
}

func (r *RemoteStore) TransitionReorder(ctx context.Context, rr *model.ReorderRequest, from model.ReorderStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ReorderRequest{}).
			Where("id = ? AND status = ?", rr.ID, from).
			Updates(map[string]any{
				"status":        rr.Status,
				"ordered_date":  rr.OrderedDate,
				"expected_date": rr.ExpectedDate,
				"received_date": rr.ReceivedDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&model.ReorderRequest{}).Where("id = ?", rr.ID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrNotFound
			}
			return ErrStaleStatus
		}

		if rr.Status != model.ReorderReceived {
			return nil
		}
		return tx.Model(&model.Inventory{}).
			Where("product_id = ? AND shop_id = ?", rr.ProductID, rr.ShopID).
			Updates(map[string]any{
				"quantity":       gorm.Expr("quantity + ?", rr.Quantity),
				"last_restocked": rr.ReceivedDate,
			}).Error
	})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStaleStatus) {
		return err
	}
	return remoteErr(err)
}
