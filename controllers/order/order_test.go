package orderControllers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, roles string) models.User {
	t.Helper()
	user := models.User{Username: name, Email: name + "@test.test", Password: "x", Roles: roles}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, sellerID uint, actualPrice int64, stock int) models.Product {
	t.Helper()

	category := models.Category{CategoryName: "cat " + name, Slug: models.Slugify("cat " + name)}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		ProductName: name,
		Slug:        models.Slugify(name),
		CategoryID:  category.ID,
		SellerID:    sellerID,
		Price:       actualPrice,
		ActualPrice: actualPrice,
		Stock:       stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// seedCart fills the buyer's cart with the given (product, quantity) lines.
func seedCart(t *testing.T, db *gorm.DB, buyerID uint, lines map[uint]int) models.Cart {
	t.Helper()

	cart := models.Cart{UserID: buyerID}
	require.NoError(t, db.Where("user_id = ?", buyerID).FirstOrCreate(&cart).Error)
	for productID, qty := range lines {
		require.NoError(t, db.Create(&models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  qty,
			AddedAt:   time.Now(),
		}).Error)
	}
	return cart
}

func placeReq(method string) PlaceOrderRequest {
	return PlaceOrderRequest{
		Address:       "12 High Street, London",
		PhoneNumber:   "07700900123",
		PaymentMethod: method,
	}
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	p1 := seedProduct(t, db, "Pen", seller.ID, 10, 100)
	p2 := seedProduct(t, db, "Notebook", seller.ID, 5, 100)
	seedCart(t, db, buyer.ID, map[uint]int{p1.ID: 2, p2.ID: 1})

	order, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)
	assert.Equal(t, int64(25), order.TotalAmount)
	assert.Equal(t, models.DefaultCurrency, order.Currency)
	assert.NotEmpty(t, order.OrderRef)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("total_price DESC").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, int64(20), items[0].TotalPrice)
	assert.Equal(t, int64(5), items[1].TotalPrice)

	var persisted models.Order
	require.NoError(t, db.First(&persisted, "id = ?", order.ID).Error)
	assert.Equal(t, int64(25), persisted.TotalAmount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer", "buyer")

	// no cart at all
	_, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	assert.ErrorIs(t, err, ErrEmptyCart)

	// cart exists but is empty
	seedCart(t, db, buyer.ID, nil)
	_, err = PlaceOrder(db, buyer.ID, placeReq("Card"))
	assert.ErrorIs(t, err, ErrEmptyCart)

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestPlaceOrderClearsCartButKeepsIt(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Lamp", seller.ID, 1500, 10)
	cart := seedCart(t, db, buyer.ID, map[uint]int{product.ID: 3})

	_, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	var itemCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	// the cart row itself survives, empty
	var kept models.Cart
	require.NoError(t, db.First(&kept, "id = ?", cart.ID).Error)
}

func TestPlaceOrderStatusDerivation(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	cashBuyer := seedUser(t, db, "cash-buyer", "buyer")
	cardBuyer := seedUser(t, db, "card-buyer", "buyer")
	product := seedProduct(t, db, "Clock", seller.ID, 900, 10)
	seedCart(t, db, cashBuyer.ID, map[uint]int{product.ID: 1})
	seedCart(t, db, cardBuyer.ID, map[uint]int{product.ID: 1})

	cashOrder, err := PlaceOrder(db, cashBuyer.ID, placeReq("Cash"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, cashOrder.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, cashOrder.PaymentStatus)

	cardOrder, err := PlaceOrder(db, cardBuyer.ID, placeReq("Card"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, cardOrder.OrderStatus)
	assert.Equal(t, models.PaymentStatusPaid, cardOrder.PaymentStatus)
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer", "buyer")

	_, err := PlaceOrder(db, buyer.ID, placeReq("Barter"))
	assert.ErrorIs(t, err, models.ErrInvalidPaymentMethod)
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Speaker", seller.ID, 100, 10)
	seedCart(t, db, buyer.ID, map[uint]int{product.ID: 2})

	order, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	// a later price change must not rewrite history
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{"price": 500, "actual_price": 500}).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	assert.Equal(t, int64(200), item.TotalPrice)

	var persisted models.Order
	require.NoError(t, db.First(&persisted, "id = ?", order.ID).Error)
	assert.Equal(t, int64(200), persisted.TotalAmount)
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Router", seller.ID, 6000, 5)
	seedCart(t, db, buyer.ID, map[uint]int{product.ID: 3})

	_, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	var after models.Product
	require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
	assert.Equal(t, 2, after.Stock)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	plenty := seedProduct(t, db, "Cable", seller.ID, 300, 100)
	scarce := seedProduct(t, db, "Console", seller.ID, 40000, 1)
	cart := seedCart(t, db, buyer.ID, map[uint]int{plenty.ID: 2, scarce.ID: 3})

	_, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing committed: no orders, no items, stock untouched, cart intact
	var orders, items, cartItems int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&cartItems).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Equal(t, int64(2), cartItems)

	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", plenty.ID).Error)
	assert.Equal(t, 100, p.Stock)
}

func TestPlaceOrderCartDrainedMidCheckout(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Monitor", seller.ID, 12000, 10)
	cart := seedCart(t, db, buyer.ID, map[uint]int{product.ID: 2})

	// A rival checkout drains the cart lines after this transaction has
	// already read them. Firing right after the order row is written puts
	// the drain inside the window the final delete-count check guards.
	require.NoError(t, db.Callback().Create().After("gorm:create").
		Register("drain_cart_lines", func(tx *gorm.DB) {
			if tx.Statement.Table != "orders" {
				return
			}
			tx.Session(&gorm.Session{NewDB: true}).
				Where("cart_id = ?", cart.ID).
				Delete(&models.CartItem{})
		}))
	defer db.Callback().Create().Remove("drain_cart_lines")

	_, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.ErrorIs(t, err, ErrCartConflict)

	// the whole checkout rolled back: no order, no items, stock intact
	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	var after models.Product
	require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
	assert.Equal(t, 10, after.Stock)
}

func TestListSellerOrdersScoping(t *testing.T) {
	db := newTestDB(t)
	sellerA := seedUser(t, db, "seller-a", "seller")
	sellerB := seedUser(t, db, "seller-b", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")

	productA := seedProduct(t, db, "Chair", sellerA.ID, 8000, 50)
	productB := seedProduct(t, db, "Desk", sellerB.ID, 15000, 50)

	// order 1: only seller A's product
	seedCart(t, db, buyer.ID, map[uint]int{productA.ID: 1})
	orderA, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	// order 2: only seller B's product
	seedCart(t, db, buyer.ID, map[uint]int{productB.ID: 1})
	orderB, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	// order 3: mixed — visible to both sellers
	seedCart(t, db, buyer.ID, map[uint]int{productA.ID: 1, productB.ID: 2})
	orderMixed, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	ordersForA, totalA, err := ListSellerOrders(db, sellerA.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totalA)
	idsA := orderIDs(ordersForA)
	assert.Contains(t, idsA, orderA.ID)
	assert.Contains(t, idsA, orderMixed.ID)
	assert.NotContains(t, idsA, orderB.ID)

	ordersForB, totalB, err := ListSellerOrders(db, sellerB.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totalB)
	idsB := orderIDs(ordersForB)
	assert.Contains(t, idsB, orderB.ID)
	assert.Contains(t, idsB, orderMixed.ID)
	assert.NotContains(t, idsB, orderA.ID)

	all, totalAll, err := ListAllOrders(db, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totalAll)
	assert.Len(t, all, 3)
}

func orderIDs(orders []models.Order) []uint {
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestListMyOrders(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	other := seedUser(t, db, "other", "buyer")
	product := seedProduct(t, db, "Kettle", seller.ID, 2500, 50)

	seedCart(t, db, buyer.ID, map[uint]int{product.ID: 1})
	_, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	mine, total, err := ListMyOrders(db, buyer.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Items, 1)
	assert.Equal(t, product.ID, mine[0].Items[0].Product.ID)

	none, total, err := ListMyOrders(db, other.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func TestUpdateOrderStatusIsPermissiveAcrossStates(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Toaster", seller.ID, 3500, 50)
	seedCart(t, db, buyer.ID, map[uint]int{product.ID: 1})
	order, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	require.NoError(t, UpdateOrderStatus(db, UpdateOrderRequest{
		OrderID:     order.ID,
		OrderStatus: "Delivered",
	}))

	// backwards transitions are deliberately allowed
	require.NoError(t, UpdateOrderStatus(db, UpdateOrderRequest{
		OrderID:       order.ID,
		OrderStatus:   "Pending",
		PaymentStatus: "Refunded",
	}))

	var updated models.Order
	require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, updated.OrderStatus)
	assert.Equal(t, models.PaymentStatusRefunded, updated.PaymentStatus)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Blender", seller.ID, 5000, 50)
	seedCart(t, db, buyer.ID, map[uint]int{product.ID: 1})
	order, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	assert.ErrorIs(t, UpdateOrderStatus(db, UpdateOrderRequest{OrderID: order.ID}), ErrNoStatusGiven)
	assert.ErrorIs(t, UpdateOrderStatus(db, UpdateOrderRequest{
		OrderID:     order.ID,
		OrderStatus: "Vanished",
	}), models.ErrInvalidOrderStatus)
	assert.ErrorIs(t, UpdateOrderStatus(db, UpdateOrderRequest{
		OrderID:       order.ID,
		PaymentStatus: "Gifted",
	}), models.ErrInvalidPaymentStatus)
	assert.ErrorIs(t, UpdateOrderStatus(db, UpdateOrderRequest{
		OrderID:     99999,
		OrderStatus: "Shipped",
	}), ErrOrderNotFound)

	// the failed updates must not have touched the order
	var untouched models.Order
	require.NoError(t, db.First(&untouched, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, untouched.OrderStatus)
	assert.Equal(t, models.PaymentStatusPaid, untouched.PaymentStatus)
}

func TestDeleteOrder(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller")
	buyer := seedUser(t, db, "buyer", "buyer")
	product := seedProduct(t, db, "Fan", seller.ID, 2000, 50)
	seedCart(t, db, buyer.ID, map[uint]int{product.ID: 2})
	order, err := PlaceOrder(db, buyer.ID, placeReq("Card"))
	require.NoError(t, err)

	require.NoError(t, DeleteOrder(db, order.ID))

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	assert.ErrorIs(t, DeleteOrder(db, order.ID), ErrOrderNotFound)
}
