package repository

import (
	"github.com/shopspring/decimal"

	"autoparts/internal/model"
)

// indexBy builds an id → item map once per fetch so joins are O(1) lookups.
func indexBy[T any](items []T, id func(*T) string) map[string]*T {
	out := make(map[string]*T, len(items))
	for i := range items {
		out[id(&items[i])] = &items[i]
	}
	return out
}

func categoryID(c *model.Category) string { return c.ID }
func supplierID(s *model.Supplier) string { return s.ID }
func productID(p *model.Product) string   { return p.ID }
func shopID(s *model.Shop) string         { return s.ID }

// The builders below are shared by both stores; a nil relation becomes a
// placeholder.

func buildProductDetail(p model.Product, cat *model.Category, sup *model.Supplier) model.ProductDetail {
	d := model.ProductDetail{Product: p, CategoryName: model.NotAvailable, SupplierName: model.NotAvailable}
	d.Category, d.Supplier = nil, nil
	if cat != nil {
		d.CategoryName = cat.Name
	}
	if sup != nil {
		d.SupplierName = sup.Name
	}
	return d
}

func buildInventoryDetail(inv model.Inventory, p *model.Product, s *model.Shop) model.InventoryDetail {
	d := model.InventoryDetail{
		Inventory:    inv,
		ProductName:  model.UnknownName,
		ProductSKU:   model.NotAvailable,
		ProductBrand: model.NotAvailable,
		UnitPrice:    decimal.Zero,
		ShopName:     model.UnknownName,
		StockStatus:  model.ClassifyStock(inv.Quantity, inv.ReorderLevel),
	}
	d.Product, d.Shop = nil, nil
	if p != nil {
		d.ProductName = p.Name
		d.ProductSKU = p.SKU
		if p.Brand != nil {
			d.ProductBrand = *p.Brand
		}
		d.UnitPrice = p.UnitPrice
	}
	if s != nil {
		d.ShopName = s.Name
	}
	return d
}

func buildAlertDetail(a model.StockAlert, p *model.Product, s *model.Shop) model.AlertDetail {
	d := model.AlertDetail{StockAlert: a, ProductName: model.UnknownName, ProductSKU: model.NotAvailable, ShopName: model.UnknownName}
	d.Product, d.Shop = nil, nil
	if p != nil {
		d.ProductName = p.Name
		d.ProductSKU = p.SKU
	}
	if s != nil {
		d.ShopName = s.Name
	}
	return d
}

func buildSaleItemDetail(it model.SaleItem, p *model.Product) model.SaleItemDetail {
	d := model.SaleItemDetail{SaleItem: it, ProductName: model.UnknownName, ProductSKU: model.NotAvailable}
	d.Product = nil
	if p != nil {
		d.ProductName = p.Name
		d.ProductSKU = p.SKU
	}
	return d
}

func buildSaleDetail(s model.Sale, shop *model.Shop) model.SaleDetail {
	d := model.SaleDetail{Sale: s, ShopName: model.UnknownName}
	d.Shop, d.Sale.Items = nil, nil
	if shop != nil {
		d.ShopName = shop.Name
	}
	return d
}

func buildReorderDetail(r model.ReorderRequest, p *model.Product, sup *model.Supplier, s *model.Shop) model.ReorderDetail {
	d := model.ReorderDetail{
		ReorderRequest: r,
		ProductName:    model.UnknownName,
		ProductSKU:     model.NotAvailable,
		SupplierName:   model.UnknownName,
		ShopName:       model.UnknownName,
	}
	d.Product, d.Supplier, d.Shop = nil, nil, nil
	if p != nil {
		d.ProductName = p.Name
		d.ProductSKU = p.SKU
	}
	if sup != nil {
		d.SupplierName = sup.Name
	}
	if s != nil {
		d.ShopName = s.Name
	}
	return d
}
