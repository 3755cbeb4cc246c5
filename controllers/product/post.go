package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

var (
	ErrDuplicateSlug    = errors.New("product already exists")
	ErrInvalidStock     = errors.New("stock cannot be less than or equal to 0")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInUse     = errors.New("product is referenced by carts or orders")
	ErrCategoryNotFound = errors.New("category does not exist")
)

type CreateProductRequest struct {
	ProductName    string   `json:"productName" binding:"required"`
	Alt            string   `json:"alt" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Image          string   `json:"image"`
	CategoryID     uint     `json:"productCategory" binding:"required"`
	Specifications []string `json:"specifications" binding:"required"`
	Price          int64    `json:"price" binding:"required"`
	Discount       int64    `json:"discount"`
	Stock          int      `json:"stock" binding:"required"`
}

// CreateProduct validates and persists a new catalog entry owned by the
// calling seller. The slug is derived from the name and must be unique.
func CreateProduct(db *gorm.DB, sellerID uint, req CreateProductRequest) (*models.Product, error) {
	if req.Stock <= 0 {
		return nil, ErrInvalidStock
	}

	var category models.Category
	if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	slug := models.Slugify(req.ProductName)
	var count int64
	if err := db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSlug
	}

	product := models.Product{
		ProductName:    req.ProductName,
		Slug:           slug,
		Description:    req.Description,
		Image:          req.Image,
		Alt:            req.Alt,
		CategoryID:     req.CategoryID,
		SellerID:       sellerID,
		Specifications: req.Specifications,
		Price:          req.Price,
		Discount:       req.Discount,
		ActualPrice:    models.ComputeActualPrice(req.Price, req.Discount),
		Stock:          req.Stock,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// POST /product/create
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
			return
		}

		if _, err := CreateProduct(db, sellerID, req); err != nil {
			switch {
			case errors.Is(err, ErrInvalidStock):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be less than or equal to 0"})
			case errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Category does not exist"})
			case errors.Is(err, ErrDuplicateSlug):
				c.JSON(http.StatusConflict, gin.H{"message": "Product already exists"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "New product created successfully"})
	}
}
