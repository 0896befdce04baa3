package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/ejardin/internal/models"
	"gorm.io/gorm"
)

// Products with fewer units than this in stock appear in the low-stock
// section of the inventory report and trigger restock alerts.
const LowStockThreshold = 5

const topProductCount = 5

type Generator struct {
	db *gorm.DB
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// Result is the outcome of a report run; exactly one of the report
// fields is set, matching Kind.
type Result struct {
	Kind      models.ReportKind `json:"kind"`
	Sales     *SalesReport      `json:"sales,omitempty"`
	Inventory *InventoryReport  `json:"inventory,omitempty"`
}

type SalesReport struct {
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	TotalSales  float64          `json:"total_sales"`
	OrderCount  int              `json:"order_count"`
	TopProducts []ProductSummary `json:"top_products"`
}

type ProductSummary struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TotalSold int     `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}

type InventoryReport struct {
	Products      []StockItem `json:"products"`
	LowStock      []StockItem `json:"low_stock"`
	TotalProducts int         `json:"total_products"`
	LowStockCount int         `json:"low_stock_count"`
}

type StockItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

// Generate dispatches to the generator for kind. The CUSTOMERS kind can be
// scheduled but has no generator; it surfaces as an error rather than an
// empty report.
func (g *Generator) Generate(kind models.ReportKind, window Window) (*Result, error) {
	switch kind {
	case models.ReportKindSales:
		sales, err := g.GenerateSales(window)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: kind, Sales: sales}, nil
	case models.ReportKindInventory:
		inventory, err := g.GenerateInventory()
		if err != nil {
			return nil, err
		}
		return &Result{Kind: kind, Inventory: inventory}, nil
	case models.ReportKindCustomers:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReportKind, kind)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidReportKind, kind)
	}
}

// GenerateSales aggregates orders created inside the window: grand total,
// order count, and the top products by revenue with catalog metadata joined
// for display.
func (g *Generator) GenerateSales(window Window) (*SalesReport, error) {
	var orders []models.Order
	if err := g.db.Preload("Items.Product").
		Where("created_at BETWEEN ? AND ?", window.Start, window.End).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to load orders: %v", ErrDataUnavailable, err)
	}

	summary := &SalesReport{
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
	}

	products := make(map[uint]*ProductSummary)
	var firstSeen []uint
	for _, o := range orders {
		summary.OrderCount++
		summary.TotalSales += o.TotalPrice

		for _, item := range o.Items {
			ps, ok := products[item.ProductID]
			if !ok {
				ps = &ProductSummary{
					ProductID: item.ProductID,
					Name:      item.Product.Name,
					Price:     item.Product.Price,
				}
				products[item.ProductID] = ps
				firstSeen = append(firstSeen, item.ProductID)
			}
			ps.TotalSold += item.Quantity
			ps.Revenue += item.Price * float64(item.Quantity)
		}
	}

	// First-seen order is preserved across the sort so revenue ties keep
	// a reproducible ranking.
	top := make([]ProductSummary, 0, len(firstSeen))
	for _, id := range firstSeen {
		top = append(top, *products[id])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Revenue > top[j].Revenue
	})
	if len(top) > topProductCount {
		top = top[:topProductCount]
	}
	summary.TopProducts = top

	return summary, nil
}

// GenerateInventory snapshots the whole catalog sorted by stock level and
// partitions out the items below the restock threshold.
func (g *Generator) GenerateInventory() (*InventoryReport, error) {
	var products []models.Product
	if err := g.db.Order("stock asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to load products: %v", ErrDataUnavailable, err)
	}

	inv := &InventoryReport{
		Products:      make([]StockItem, 0, len(products)),
		TotalProducts: len(products),
	}
	for _, p := range products {
		item := StockItem{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			Price:     p.Price,
			Category:  p.Category,
		}
		inv.Products = append(inv.Products, item)
		if p.Stock < LowStockThreshold {
			inv.LowStock = append(inv.LowStock, item)
		}
	}
	inv.LowStockCount = len(inv.LowStock)

	return inv, nil
}
