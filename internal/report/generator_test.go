package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/ejardin/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ReportSchedule{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, createdAt time.Time, items []models.OrderItem) {
	t.Helper()

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	order := models.Order{
		Number:     uuid.NewString(),
		UserID:     1,
		Items:      items,
		Status:     models.OrderStatusProcessing,
		TotalPrice: total,
	}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("created_at", createdAt).Error)
}

func TestGenerateSales(t *testing.T) {
	db := newTestDB(t)
	gen := NewGenerator(db)

	rose := models.Product{Name: "Rosier grimpant", Price: 25, Stock: 10}
	fern := models.Product{Name: "Fougère", Price: 10, Stock: 20}
	pot := models.Product{Name: "Pot en terre cuite", Price: 5, Stock: 50}
	require.NoError(t, db.Create(&rose).Error)
	require.NoError(t, db.Create(&fern).Error)
	require.NoError(t, db.Create(&pot).Error)

	inWindow := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	// 10 orders totaling 500.00: each order is one rose (25) + one pot (5)
	// plus two ferns (20) = 50 per order.
	for i := 0; i < 10; i++ {
		seedOrder(t, db, inWindow.AddDate(0, 0, i), []models.OrderItem{
			{ProductID: rose.ID, Quantity: 1, Price: 25},
			{ProductID: pot.ID, Quantity: 1, Price: 5},
			{ProductID: fern.ID, Quantity: 2, Price: 10},
		})
	}

	// Outside the window, must not be counted.
	seedOrder(t, db, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), []models.OrderItem{
		{ProductID: rose.ID, Quantity: 4, Price: 25},
	})

	window := Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	}
	sales, err := gen.GenerateSales(window)
	require.NoError(t, err)

	assert.Equal(t, 500.0, sales.TotalSales)
	assert.Equal(t, 10, sales.OrderCount)
	assert.Equal(t, window.Start, sales.PeriodStart)

	require.Len(t, sales.TopProducts, 3)
	assert.LessOrEqual(t, len(sales.TopProducts), 5)
	for i := 1; i < len(sales.TopProducts); i++ {
		assert.GreaterOrEqual(t, sales.TopProducts[i-1].Revenue, sales.TopProducts[i].Revenue,
			"top products must be sorted descending by revenue")
	}

	// Rose: 10 * 25 = 250, fern: 20 * 10 = 200, pot: 10 * 5 = 50.
	assert.Equal(t, "Rosier grimpant", sales.TopProducts[0].Name)
	assert.Equal(t, 250.0, sales.TopProducts[0].Revenue)
	assert.Equal(t, 10, sales.TopProducts[0].TotalSold)
	assert.Equal(t, "Fougère", sales.TopProducts[1].Name)
	assert.Equal(t, "Pot en terre cuite", sales.TopProducts[2].Name)
}

func TestGenerateSalesTruncatesTopProducts(t *testing.T) {
	db := newTestDB(t)
	gen := NewGenerator(db)

	when := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	var items []models.OrderItem
	for i := 0; i < 7; i++ {
		p := models.Product{Name: fmt.Sprintf("Plante %d", i), Price: float64(i + 1), Stock: 10}
		require.NoError(t, db.Create(&p).Error)
		items = append(items, models.OrderItem{ProductID: p.ID, Quantity: 1, Price: p.Price})
	}
	seedOrder(t, db, when, items)

	sales, err := gen.GenerateSales(Window{Start: when.AddDate(0, 0, -1), End: when.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Len(t, sales.TopProducts, 5)
}

func TestGenerateSalesEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	gen := NewGenerator(db)

	sales, err := gen.GenerateSales(Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Zero(t, sales.TotalSales)
	assert.Zero(t, sales.OrderCount)
	assert.Empty(t, sales.TopProducts)
}

func TestGenerateInventory(t *testing.T) {
	db := newTestDB(t)
	gen := NewGenerator(db)

	for i, stock := range []int{10, 1, 5, 4} {
		require.NoError(t, db.Create(&models.Product{
			Name:     fmt.Sprintf("Produit %d", i),
			Price:    9.90,
			Stock:    stock,
			Category: "plantes",
		}).Error)
	}

	inv, err := gen.GenerateInventory()
	require.NoError(t, err)

	assert.Equal(t, 4, inv.TotalProducts)
	assert.Equal(t, 2, inv.LowStockCount)
	require.Len(t, inv.Products, 4)

	// Sorted ascending by stock; stock 5 sits exactly at the threshold and
	// is not low stock.
	stocks := []int{inv.Products[0].Stock, inv.Products[1].Stock, inv.Products[2].Stock, inv.Products[3].Stock}
	assert.Equal(t, []int{1, 4, 5, 10}, stocks)
	for _, item := range inv.LowStock {
		assert.Less(t, item.Stock, LowStockThreshold)
	}
}

func TestGenerateDispatch(t *testing.T) {
	db := newTestDB(t)
	gen := NewGenerator(db)
	window := Window{Start: time.Now().AddDate(0, 0, -1), End: time.Now()}

	result, err := gen.Generate(models.ReportKindInventory, window)
	require.NoError(t, err)
	assert.Equal(t, models.ReportKindInventory, result.Kind)
	assert.NotNil(t, result.Inventory)
	assert.Nil(t, result.Sales)

	result, err = gen.Generate(models.ReportKindSales, window)
	require.NoError(t, err)
	assert.NotNil(t, result.Sales)
	assert.Nil(t, result.Inventory)

	_, err = gen.Generate(models.ReportKindCustomers, window)
	assert.ErrorIs(t, err, ErrUnsupportedReportKind)

	_, err = gen.Generate(models.ReportKind("BOGUS"), window)
	assert.ErrorIs(t, err, ErrInvalidReportKind)
}

func TestGenerateStoreFailureIsDataUnavailable(t *testing.T) {
	db := newTestDB(t)
	gen := NewGenerator(db)
	window := Window{Start: time.Now().AddDate(0, 0, -1), End: time.Now()}

	// A missing table stands in for any persistence failure; the caller
	// must still be able to classify it.
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))
	_, err := gen.GenerateSales(window)
	assert.ErrorIs(t, err, ErrDataUnavailable)

	require.NoError(t, db.Migrator().DropTable(&models.Product{}))
	_, err = gen.GenerateInventory()
	assert.ErrorIs(t, err, ErrDataUnavailable)

	_, err = gen.Generate(models.ReportKindSales, window)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
