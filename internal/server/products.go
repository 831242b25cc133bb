package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inventoryManagement/internal/catalog"
	"inventoryManagement/models"
	"inventoryManagement/repository"
)

type productRequest struct {
	Name           string  `json:"name" binding:"required"`
	Price          float64 `json:"price" binding:"gte=0"`
	Quantity       int     `json:"quantity" binding:"gte=0"`
	Brand          string  `json:"brand" binding:"required"`
	Style          string  `json:"style" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	Photo          *string `json:"photo,omitempty"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
}

// toProduct validates the categorical fields against the controlled
// vocabularies and builds the model. Vocabulary checks happen here, at input
// time; the store accepts any text.
func (r *productRequest) toProduct() (*models.Product, error) {
	brand := catalog.Normalize(r.Brand)
	if !catalog.ValidBrand(brand) {
		return nil, fmt.Errorf("unknown brand %q", r.Brand)
	}
	style := catalog.Normalize(r.Style)
	if !catalog.ValidStyle(style) {
		return nil, fmt.Errorf("unknown style %q", r.Style)
	}
	typ := catalog.Normalize(r.Type)
	if !catalog.ValidType(typ) {
		return nil, fmt.Errorf("unknown type %q", r.Type)
	}
	return &models.Product{
		Name:           r.Name,
		Price:          r.Price,
		Quantity:       r.Quantity,
		Brand:          brand,
		Style:          style,
		Type:           typ,
		Photo:          r.Photo,
		ExpirationDate: r.ExpirationDate,
	}, nil
}

type sellRequest struct {
	Units int `json:"units"`
}

func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list products: " + err.Error()})
		return
	}
	// Optional facet filters, applied over the full listing like the
	// original stock page.
	if brand := c.Query("brand"); brand != "" {
		list = filterProducts(list, func(p models.Product) bool { return p.Brand == catalog.Normalize(brand) })
	}
	if style := c.Query("style"); style != "" {
		list = filterProducts(list, func(p models.Product) bool { return p.Style == catalog.Normalize(style) })
	}
	if typ := c.Query("type"); typ != "" {
		list = filterProducts(list, func(p models.Product) bool { return p.Type == catalog.Normalize(typ) })
	}
	if list == nil {
		list = []models.Product{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) listSoldOut(c *gin.Context) {
	list, err := s.products.ListSoldOut(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list sold out: " + err.Error()})
		return
	}
	if list == nil {
		list = []models.Product{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get product: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := req.toProduct()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.products.Create(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create product: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// updateProduct is a full replacement: fields not supplied are blanked, so
// callers re-send the previous photo filename when nothing new was uploaded.
func (s *Server) updateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	existing, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get product: " + err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := req.toProduct()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = id
	if err := s.products.Update(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update product: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete product: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) sellProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Units <= 0 {
		req.Units = 1
	}
	err := s.products.RecordSale(c.Request.Context(), id, req.Units)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, repository.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record sale: " + err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"sold": req.Units, "id": id})
	}
}

// uploadPhoto stores the file under the assets directory with a
// timestamp-prefixed name and attaches it to the product.
func (s *Server) uploadPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get product: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if err := os.MkdirAll(s.cfg.Storage.AssetsDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assets dir: " + err.Error()})
		return
	}
	name := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.Storage.AssetsDir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save photo: " + err.Error()})
		return
	}
	if err := s.products.UpdatePhoto(c.Request.Context(), id, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update photo: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo": name})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}

func filterProducts(list []models.Product, keep func(models.Product) bool) []models.Product {
	var out []models.Product
	for _, p := range list {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
