package cartControllers

import (
	"testing"

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

func seedProduct(t *testing.T, db *gorm.DB, name string, actualPrice int64, stock int) models.Product {
	t.Helper()

	seller := models.User{Username: "seller-" + name, Email: name + "@seller.test", Password: "x", Roles: "seller"}
	require.NoError(t, db.Create(&seller).Error)
	category := models.Category{CategoryName: "cat " + name, Slug: models.Slugify("cat " + name)}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		ProductName: name,
		Slug:        models.Slugify(name),
		CategoryID:  category.ID,
		SellerID:    seller.ID,
		Price:       actualPrice,
		ActualPrice: actualPrice,
		Stock:       stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedBuyer(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	buyer := models.User{Username: name, Email: name + "@buyer.test", Password: "x", Roles: "buyer"}
	require.NoError(t, db.Create(&buyer).Error)
	return buyer
}

func TestAddToCartIncrementsInsteadOfDuplicating(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "alice")
	product := seedProduct(t, db, "Desk Lamp", 1500, 10)

	require.NoError(t, AddToCart(db, buyer.ID, product.ID))
	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartCreatesCartLazily(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "bob")
	product := seedProduct(t, db, "Mug", 400, 5)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", buyer.ID).First(&cart).Error)
}

func TestAddToCartReusesExistingCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "judy")
	product := seedProduct(t, db, "Speaker", 9000, 5)

	existing := models.Cart{UserID: buyer.ID}
	require.NoError(t, db.Create(&existing).Error)

	// the insert-if-absent must land on the existing row, never a second cart
	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.Equal(t, int64(1), carts)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, existing.ID, item.CartID)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "carol")

	assert.ErrorIs(t, AddToCart(db, buyer.ID, 9999), ErrProductNotFound)
}

func TestUpdateCartRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "dave")
	product := seedProduct(t, db, "Keyboard", 2500, 10)
	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	assert.ErrorIs(t, UpdateCart(db, buyer.ID, product.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, UpdateCart(db, buyer.ID, product.ID, -1), ErrInvalidQuantity)

	// cart state unchanged
	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateCartSetsQuantity(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "erin")
	product := seedProduct(t, db, "Monitor", 12000, 10)
	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	require.NoError(t, UpdateCart(db, buyer.ID, product.ID, 4))

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 4, item.Quantity)
}

func TestUpdateCartMissingItem(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "frank")
	product := seedProduct(t, db, "Chair", 8000, 3)

	// no cart yet
	assert.ErrorIs(t, UpdateCart(db, buyer.ID, product.ID, 2), ErrCartItemNotFound)

	// cart exists but item does not
	other := seedProduct(t, db, "Table", 20000, 3)
	require.NoError(t, AddToCart(db, buyer.ID, other.ID))
	assert.ErrorIs(t, UpdateCart(db, buyer.ID, product.ID, 2), ErrCartItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "grace")
	product := seedProduct(t, db, "Webcam", 3000, 5)
	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	require.NoError(t, RemoveFromCart(db, buyer.ID, product.ID))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, RemoveFromCart(db, buyer.ID, product.ID), ErrCartItemNotFound)
}

func TestGetCartReturnsEmptyShapeWithoutCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "heidi")

	cart, err := GetCart(db, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestGetCartLoadsProducts(t *testing.T) {
	db := newTestDB(t)
	buyer := seedBuyer(t, db, "ivan")
	product := seedProduct(t, db, "Headset", 4500, 5)
	require.NoError(t, AddToCart(db, buyer.ID, product.ID))

	cart, err := GetCart(db, buyer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].Product.ID)
	assert.Equal(t, int64(4500), cart.Items[0].Product.ActualPrice)
}
