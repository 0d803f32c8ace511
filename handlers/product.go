package handlers

import (
	"net/http"
	"strconv"

	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/models"
	"github.com/asharbutt0314/foodexpress/storage"

	"github.com/gin-gonic/gin"
)

type AddProductRequest struct {
	Name        string  `form:"name" binding:"required"`
	Price       float64 `form:"price" binding:"required,gte=0"`
	Description string  `form:"description"`
	Discount    int     `form:"discount"`
	OwnerID     string  `form:"clientId" binding:"required"`
}

// ListProducts returns the whole catalog. Orphaned products (owner
// account gone) stay visible until ReconcileProducts runs; cleanup is
// a maintenance operation, not a side effect of reads.
func ListProducts(c *gin.Context) {
	var products []models.Product
	if err := config.DB.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ReconcileProducts deletes products whose owner account no longer
// exists.
func ReconcileProducts(c *gin.Context) {
	owners := config.DB.Model(&models.Account{}).
		Select("id").
		Where("kind = ?", models.KindRestaurant)

	res := config.DB.Where("owner_id NOT IN (?)", owners).Delete(&models.Product{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reconcile products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orphaned products removed", "deleted": res.RowsAffected})
}

// GetClientProducts lists one restaurant's catalog.
func GetClientProducts(c *gin.Context) {
	ownerID := c.Param("clientId")
	if accountByID(models.KindRestaurant, ownerID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		return
	}

	var products []models.Product
	if err := config.DB.Where("owner_id = ?", ownerID).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch client products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product by id.
func GetProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// AddProduct creates a catalog entry with an optional image upload.
func AddProduct(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	imagePath, err := storage.SaveUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       imagePath,
		Discount:    models.ClampDiscount(req.Discount),
		OwnerID:     req.OwnerID,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// EditProduct updates fields present in the form. Only the owning
// restaurant may edit.
func EditProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	if product.OwnerID != c.PostForm("clientId") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to edit this product"})
		return
	}

	if v, ok := c.GetPostForm("name"); ok {
		product.Name = v
	}
	if v, ok := c.GetPostForm("description"); ok {
		product.Description = v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update product"})
			return
		}
		product.Price = price
	}
	if v, ok := c.GetPostForm("discount"); ok {
		discount, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update product"})
			return
		}
		product.Discount = models.ClampDiscount(discount)
	}
	imagePath, err := storage.SaveUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}
	if imagePath != "" {
		product.Image = imagePath
	}

	if err := config.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product. Only the owning restaurant may delete.
func DeleteProduct(c *gin.Context) {
	var body struct {
		OwnerID string `json:"clientId" form:"clientId"`
	}
	_ = c.ShouldBind(&body)

	var product models.Product
	if err := config.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if product.OwnerID != body.OwnerID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this product"})
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "product": product})
}
