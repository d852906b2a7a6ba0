package service

import (
	"context"
	"errors"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/repository"
)

// ── Categories ───────────────────────────────────────────────────────────────

type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, req dto.CategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id string, req dto.CategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	store repository.Store
}

func NewCategoryService(store repository.Store) CategoryService {
	return &categoryService{store: store}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if cats == nil && err == nil {
		cats = []model.Category{}
	}
	return cats, err
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*model.Category, error) {
	c := &model.Category{Name: req.Name, Description: nonEmpty(req.Description)}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req dto.CategoryRequest) (*model.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Description = nonEmpty(req.Description)
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}

// ── Suppliers ────────────────────────────────────────────────────────────────

type SupplierService interface {
	List(ctx context.Context, filter dto.SupplierFilter) ([]model.Supplier, error)
	Get(ctx context.Context, id string) (*model.Supplier, error)
	Create(ctx context.Context, req dto.SupplierRequest) (*model.Supplier, error)
	Update(ctx context.Context, id string, req dto.SupplierRequest) (*model.Supplier, error)
	Delete(ctx context.Context, id string) error
	// Products lists the catalog entries supplied by the supplier.
	Products(ctx context.Context, id string) ([]model.ProductDetail, error)
	// OrderStock places a pending reorder request with the supplier.
	OrderStock(ctx context.Context, supplierID, userID string, req dto.OrderStockRequest) (*model.ReorderDetail, error)
}

type supplierService struct {
	store    repository.Store
	reorders ReorderService
}

func NewSupplierService(store repository.Store, reorders ReorderService) SupplierService {
	return &supplierService{store: store, reorders: reorders}
}

func (s *supplierService) List(ctx context.Context, filter dto.SupplierFilter) ([]model.Supplier, error) {
	all, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return filterSlice(all, func(sup *model.Supplier) bool {
		return matches(filter.Search, sup.Name, deref(sup.ContactPerson))
	}), nil
}

func (s *supplierService) Get(ctx context.Context, id string) (*model.Supplier, error) {
	return s.store.GetSupplier(ctx, id)
}

func supplierFromRequest(sup *model.Supplier, req dto.SupplierRequest) {
	sup.Name = req.Name
	sup.ContactPerson = nonEmpty(req.ContactPerson)
	sup.Email = nonEmpty(req.Email)
	sup.Phone = nonEmpty(req.Phone)
	sup.Address = nonEmpty(req.Address)
	sup.City = nonEmpty(req.City)
	sup.State = nonEmpty(req.State)
	sup.ZipCode = nonEmpty(req.ZipCode)
	sup.Notes = nonEmpty(req.Notes)
}

func (s *supplierService) Create(ctx context.Context, req dto.SupplierRequest) (*model.Supplier, error) {
	sup := &model.Supplier{}
	supplierFromRequest(sup, req)
	if err := s.store.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) Update(ctx context.Context, id string, req dto.SupplierRequest) (*model.Supplier, error) {
	sup, err := s.store.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	supplierFromRequest(sup, req)
	if err := s.store.UpdateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteSupplier(ctx, id)
}

func (s *supplierService) Products(ctx context.Context, id string) ([]model.ProductDetail, error) {
	if _, err := s.store.GetSupplier(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filterSlice(all, func(p *model.ProductDetail) bool {
		return deref(p.SupplierID) == id
	}), nil
}

func (s *supplierService) OrderStock(ctx context.Context, supplierID, userID string, req dto.OrderStockRequest) (*model.ReorderDetail, error) {
	if _, err := s.store.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.reorders.Create(ctx, userID, dto.CreateReorderRequest{
		ShopID:     req.ShopID,
		ProductID:  req.ProductID,
		SupplierID: &supplierID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
}

// ── Products ─────────────────────────────────────────────────────────────────

type ProductService interface {
	List(ctx context.Context, filter dto.ProductFilter) ([]model.ProductDetail, error)
	Get(ctx context.Context, id string) (*model.ProductDetail, error)
	Create(ctx context.Context, req dto.ProductRequest) (*model.ProductDetail, error)
	Update(ctx context.Context, id string, req dto.ProductRequest) (*model.ProductDetail, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]model.ProductDetail, error) {
	all, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filterSlice(all, func(p *model.ProductDetail) bool {
		if filter.CategoryID != "" && deref(p.CategoryID) != filter.CategoryID {
			return false
		}
		if filter.SupplierID != "" && deref(p.SupplierID) != filter.SupplierID {
			return false
		}
		return matches(filter.Search, p.Name, p.SKU, deref(p.Brand))
	}), nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.ProductDetail, error) {
	return s.store.GetProduct(ctx, id)
}

// checkRelations rejects references to categories or suppliers that do not exist.
func (s *productService) checkRelations(ctx context.Context, p *model.Product) error {
	if p.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *p.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("category_id", "unknown category")
			}
			return err
		}
	}
	if p.SupplierID != nil {
		if _, err := s.store.GetSupplier(ctx, *p.SupplierID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("supplier_id", "unknown supplier")
			}
			return err
		}
	}
	return nil
}

func productFromRequest(p *model.Product, req dto.ProductRequest) {
	p.Name = req.Name
	p.SKU = req.SKU
	p.Description = nonEmpty(req.Description)
	p.Brand = nonEmpty(req.Brand)
	p.PartNumber = nonEmpty(req.PartNumber)
	p.CategoryID = nonEmpty(req.CategoryID)
	p.SupplierID = nonEmpty(req.SupplierID)
	p.CostPrice = req.CostPrice.Round(2)
	p.UnitPrice = req.UnitPrice.Round(2)
}

func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (*model.ProductDetail, error) {
	p := &model.Product{}
	productFromRequest(p, req)
	if err := s.checkRelations(ctx, p); err != nil {
		return nil, err
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.store.GetProduct(ctx, p.ID)
}

func (s *productService) Update(ctx context.Context, id string, req dto.ProductRequest) (*model.ProductDetail, error) {
	cur, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p := cur.Product
	productFromRequest(&p, req)
	if err := s.checkRelations(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProduct(ctx, &p); err != nil {
		return nil, err
	}
	return s.store.GetProduct(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

// ── Shops ────────────────────────────────────────────────────────────────────

type ShopService interface {
	List(ctx context.Context) ([]model.Shop, error)
	Get(ctx context.Context, id string) (*model.Shop, error)
	Create(ctx context.Context, req dto.ShopRequest) (*model.Shop, error)
	Update(ctx context.Context, id string, req dto.ShopRequest) (*model.Shop, error)
}

type shopService struct {
	store repository.Store
}

func NewShopService(store repository.Store) ShopService {
	return &shopService{store: store}
}

func (s *shopService) List(ctx context.Context) ([]model.Shop, error) {
	shops, err := s.store.ListShops(ctx)
	if shops == nil && err == nil {
		shops = []model.Shop{}
	}
	return shops, err
}

func (s *shopService) Get(ctx context.Context, id string) (*model.Shop, error) {
	return s.store.GetShop(ctx, id)
}

func shopFromRequest(shop *model.Shop, req dto.ShopRequest) {
	shop.Name = req.Name
	shop.Location = nonEmpty(req.Location)
	shop.ContactEmail = nonEmpty(req.ContactEmail)
	shop.ContactPhone = nonEmpty(req.ContactPhone)
	shop.Address = nonEmpty(req.Address)
	shop.City = nonEmpty(req.City)
	shop.State = nonEmpty(req.State)
	shop.ZipCode = nonEmpty(req.ZipCode)
}

func (s *shopService) Create(ctx context.Context, req dto.ShopRequest) (*model.Shop, error) {
	shop := &model.Shop{}
	shopFromRequest(shop, req)
	if err := s.store.CreateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) Update(ctx context.Context, id string, req dto.ShopRequest) (*model.Shop, error) {
	shop, err := s.store.GetShop(ctx, id)
	if err != nil {
		return nil, err
	}
	shopFromRequest(shop, req)
	if err := s.store.UpdateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}
