package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/domain/validation"
	"logistics-http-service/internal/infrastructure/config"
	"logistics-http-service/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := database.NewConnectionPool(&config.Config{
		DBDriver:       "sqlite",
		DBPath:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBLogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, database.Migrate(pool.GetDB(), "auto"))
	return pool.GetDB()
}

func seedEditor(t *testing.T, db *gorm.DB, email string, admin bool) *models.Editor {
	t.Helper()
	editor, err := NewEditorService(db, 4).Create(context.Background(), validation.Attributes{
		"name":         "ed",
		"email":        email,
		"password":     "secret1",
		"super_editor": admin,
	})
	require.NoError(t, err)
	return editor
}

func TestCustomerCreateAndFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	editor := seedEditor(t, db, "a@example.com", false)
	customers := NewCustomerService(db)

	_, err := customers.Create(ctx, validation.Attributes{"name": "ismail", "phone": "0555123456", "editor_id": editor.ID})
	require.NoError(t, err)
	_, err = customers.Create(ctx, validation.Attributes{"name": "omar", "phone": "0555123457", "editor_id": editor.ID})
	require.NoError(t, err)

	found, err := customers.List(ctx, url.Values{"name": {"ismail"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ismail", found[0].Name)

	all, err := customers.List(ctx, url.Values{"nonexistent_field": {"x"}})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCustomerValidationErrors(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	editor := seedEditor(t, db, "a@example.com", false)
	customers := NewCustomerService(db)

	_, err := customers.Create(ctx, validation.Attributes{"name": "x", "phone": "0555123456", "editor_id": editor.ID})
	require.NoError(t, err)

	_, err = customers.Create(ctx, validation.Attributes{"name": "", "phone": "0555123456", "editor_id": 999})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{validation.MsgBlank}, errs["name"])
	assert.Equal(t, []string{validation.MsgTaken}, errs["phone"])
	assert.Equal(t, []string{validation.MsgMustExist}, errs["editor"])
}

func TestUpdateMergesExistingAttributes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	editor := seedEditor(t, db, "a@example.com", false)
	customers := NewCustomerService(db)

	customer, err := customers.Create(ctx, validation.Attributes{"name": "x", "phone": "0555123456", "editor_id": editor.ID})
	require.NoError(t, err)

	require.NoError(t, customers.Update(ctx, customer, validation.Attributes{"name": "renamed"}))

	reloaded, err := customers.Find(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", reloaded.Name)
	assert.Equal(t, "0555123456", reloaded.Phone)

	// 更新自身时唯一性检查排除当前记录
	assert.NoError(t, customers.Update(ctx, reloaded, validation.Attributes{"phone": "0555123456"}))
}

func TestFindMissingRecord(t *testing.T) {
	db := newTestDB(t)
	_, err := NewProductService(db).Find(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFlightDeleteCascadesExpenses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	editor := seedEditor(t, db, "a@example.com", false)

	traveler, err := NewTravelerService(db).Create(ctx, validation.Attributes{"name": "t", "phone": "0555000000", "editor_id": editor.ID})
	require.NoError(t, err)

	flights := NewFlightService(db)
	flight, err := flights.Create(ctx, validation.Attributes{
		"flight_date": "2024-05-01", "ticket_no": "TK1", "ticket_price": 300,
		"airline": "TK", "trip_type": "round", "traveler_id": traveler.ID,
	})
	require.NoError(t, err)

	expenses := NewFlightExpenseService(db)
	_, err = expenses.Create(ctx, validation.Attributes{"expense_type": "fuel", "amount": 20, "direction": "out", "flight_id": flight.ID})
	require.NoError(t, err)

	assert.Equal(t, []string{"flight_expenses"}, flights.Cascades())
	require.NoError(t, flights.Delete(ctx, flight))

	var count int64
	require.NoError(t, db.Model(&models.FlightExpense{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteRestrictedByDependents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	editor := seedEditor(t, db, "a@example.com", false)

	travelers := NewTravelerService(db)
	traveler, err := travelers.Create(ctx, validation.Attributes{"name": "t", "phone": "0555000000", "editor_id": editor.ID})
	require.NoError(t, err)
	_, err = NewFlightService(db).Create(ctx, validation.Attributes{
		"flight_date": "2024-05-01", "ticket_no": "TK1", "ticket_price": 120,
		"airline": "TK", "trip_type": "one_way", "traveler_id": traveler.ID,
	})
	require.NoError(t, err)

	err = travelers.Delete(ctx, traveler)
	var depErr *DependentsError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "flights", depErr.Association)
	assert.Equal(t, "Cannot delete record because dependent flights exist", depErr.Error())

	_, err = travelers.Find(ctx, traveler.ID)
	assert.NoError(t, err)
}

func TestOrderProductResolveProductAndStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	products := NewProductService(db)
	rice, err := products.Create(ctx, validation.Attributes{"product_type": "rice", "stock": 10.0, "price": 2.5})
	require.NoError(t, err)
	oil, err := products.Create(ctx, validation.Attributes{"product_type": "oil", "stock": 1.0, "price": 9})
	require.NoError(t, err)

	lines := NewOrderProductService(db, products)

	product, err := lines.ResolveProduct(ctx, nil, validation.Attributes{"product_id": rice.ID})
	require.NoError(t, err)
	assert.Equal(t, rice.ID, product.ID)

	_, err = lines.ResolveProduct(ctx, nil, validation.Attributes{"product_id": 999})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = lines.ResolveProduct(ctx, nil, validation.Attributes{})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	existing := &models.OrderProduct{ProductID: oil.ID}
	product, err = lines.ResolveProduct(ctx, existing, validation.Attributes{"quantity": 1})
	require.NoError(t, err)
	assert.Equal(t, oil.ID, product.ID)

	product, err = lines.ResolveProduct(ctx, existing, validation.Attributes{"product_id": rice.ID})
	require.NoError(t, err)
	assert.Equal(t, rice.ID, product.ID)

	// 更新时提交了不存在的商品同样按不存在处理
	_, err = lines.ResolveProduct(ctx, existing, validation.Attributes{"product_id": 999})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = lines.ResolveProduct(ctx, existing, validation.Attributes{"product_id": "abc"})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, lines.CheckStock(rice, validation.Attributes{"quantity": 11.0}), ErrStockExceeded)
	assert.NoError(t, lines.CheckStock(rice, validation.Attributes{"quantity": 10.0}))
	assert.NoError(t, lines.CheckStock(rice, validation.Attributes{"quantity": ""}))
}

func TestOrderDeleteCascadesLines(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	editor := seedEditor(t, db, "a@example.com", false)

	customer, err := NewCustomerService(db).Create(ctx, validation.Attributes{"name": "c", "phone": "0555000001", "editor_id": editor.ID})
	require.NoError(t, err)
	product, err := NewProductService(db).Create(ctx, validation.Attributes{"product_type": "rice", "stock": 5, "price": 1})
	require.NoError(t, err)

	orders := NewOrderService(db)
	order, err := orders.Create(ctx, validation.Attributes{"order_date": time.Now().Format(validation.DateLayout), "total": 10, "customer_id": customer.ID})
	require.NoError(t, err)

	lines := NewOrderProductService(db, NewProductService(db))
	_, err = lines.Create(ctx, validation.Attributes{"quantity": 2, "price": 1, "order_id": order.ID, "product_id": product.ID})
	require.NoError(t, err)

	require.NoError(t, orders.Delete(ctx, order))

	var count int64
	require.NoError(t, db.Model(&models.OrderProduct{}).Count(&count).Error)
	assert.Zero(t, count)
}
