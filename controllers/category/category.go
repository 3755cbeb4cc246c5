package categoryControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Manish34474/TradeNest/middleware"
	"github.com/Manish34474/TradeNest/models"
)

var (
	ErrDuplicateSlug    = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by products")
)

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
	Alt          string `json:"alt" binding:"required"`
	Image        string `json:"image"`
}

type UpdateCategoryRequest struct {
	ID           uint   `json:"id" binding:"required"`
	CategoryName string `json:"categoryName"`
	Alt          string `json:"alt"`
	Image        string `json:"image"`
}

type DeleteCategoryRequest struct {
	ID uint `json:"id" binding:"required"`
}

// -------- Core Logic --------

func CreateCategory(db *gorm.DB, req CreateCategoryRequest) (*models.Category, error) {
	slug := models.Slugify(req.CategoryName)
	var count int64
	if err := db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSlug
	}

	category := models.Category{
		CategoryName: req.CategoryName,
		Slug:         slug,
		Alt:          req.Alt,
		Image:        req.Image,
	}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func UpdateCategory(db *gorm.DB, req UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.CategoryName != "" && req.CategoryName != category.CategoryName {
		slug := models.Slugify(req.CategoryName)
		var count int64
		if err := db.Model(&models.Category{}).
			Where("slug = ? AND id <> ?", slug, category.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateSlug
		}
		category.CategoryName = req.CategoryName
		category.Slug = slug
	}
	if req.Alt != "" {
		category.Alt = req.Alt
	}
	if req.Image != "" {
		category.Image = req.Image
	}

	if err := db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory refuses to remove a category that products still reference.
func DeleteCategory(db *gorm.DB, categoryID uint) error {
	var category models.Category
	if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	var refs int64
	if err := db.Model(&models.Product{}).Where("category_id = ?", categoryID).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrCategoryInUse
	}

	return db.Delete(&category).Error
}

// -------- Handlers --------

// GET /category/all
func GetCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := middleware.Pagination(c)

		var total int64
		if err := db.Model(&models.Category{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}

		var categories []models.Category
		if err := db.Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"categories":      categories,
			"currentPage":     page,
			"totalPages":      (total + int64(limit) - 1) / int64(limit),
			"totalCategories": total,
		})
	}
}

// GET /category/:slug
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var category models.Category
		if err := db.Preload("Products").Where("slug = ?", slug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// POST /category/create
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "categoryName and alt are required"})
			return
		}

		if _, err := CreateCategory(db, req); err != nil {
			if errors.Is(err, ErrDuplicateSlug) {
				c.JSON(http.StatusConflict, gin.H{"message": "Category already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "New category created successfully"})
	}
}

// PUT /category/update
func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
			return
		}

		if _, err := UpdateCategory(db, req); err != nil {
			switch {
			case errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			case errors.Is(err, ErrDuplicateSlug):
				c.JSON(http.StatusConflict, gin.H{"message": "Category already exists"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
	}
}

// DELETE /category/delete
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
			return
		}

		if err := DeleteCategory(db, req.ID); err != nil {
			switch {
			case errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			case errors.Is(err, ErrCategoryInUse):
				c.JSON(http.StatusConflict, gin.H{"message": "Category is referenced by products and cannot be deleted"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Oops!! something went wrong. Try Again."})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
