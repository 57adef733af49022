package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/pkg/bind"
	"github.com/totaltools/manufacturing-api/pkg/cache"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/response"
	"github.com/totaltools/manufacturing-api/pkg/storage"
)

const (
	productCacheKey = "products:all"
	productCacheTTL = 30 * time.Second

	maxPictureBytes = 8 << 20 // 8 MB
)

// ProductController serves the catalogue.
type ProductController struct {
	products repositories.ProductStore
	cache    *cache.Cache
	pictures storage.Disk
}

func NewProductController(products repositories.ProductStore, c *cache.Cache, pictures storage.Disk) *ProductController {
	return &ProductController{products: products, cache: c, pictures: pictures}
}

type productInput struct {
	ProductName       string  `json:"productName"       validate:"required,min=2,max=255"`
	ShortDescription  string  `json:"shortDescription"  validate:"nullable,max=2000"`
	MOQuantity        int     `json:"moQuantity"        validate:"nullable,gte=1"`
	AvailableQuantity int     `json:"availableQuantity" validate:"nullable,gte=0"`
	Price             float64 `json:"price"             validate:"required,gt=0"`
	Picture           string  `json:"picture"           validate:"nullable,max=2048"`
}

// Create handles POST /products (admin).
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if !bind.Input(w, r, &in) {
		return
	}

	product := models.Product{
		ProductName:       in.ProductName,
		ShortDescription:  in.ShortDescription,
		MOQuantity:        in.MOQuantity,
		AvailableQuantity: in.AvailableQuantity,
		Price:             in.Price,
		Picture:           in.Picture,
	}

	if _, err := c.products.Create(r.Context(), &product); err != nil {
		logger.WithCtx(r.Context()).Error("create product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.invalidate(r)
	response.Created(w, product)
}

// List handles GET /products (public). The list is cached briefly; the
// catalogue changes rarely compared to how often the storefront reads it.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if c.cache.Get(r.Context(), productCacheKey, &products) {
		response.Success(w, products)
		return
	}

	products, err := c.products.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := c.cache.Set(r.Context(), productCacheKey, products, productCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("cache products failed", "error", err)
	}
	response.Success(w, products)
}

// Show handles GET /products/{id} (public).
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	product, err := c.products.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("show product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, product)
}

// UpdateQuantity handles PATCH /products/{id}. Left unauthenticated on
// purpose: the storefront decrements availableQuantity during checkout
// before the buyer has a token for anything but their own session.
func (c *ProductController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	var in struct {
		AvailableQuantity int `json:"availableQuantity" validate:"gte=0"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	if err := c.products.UpdateQuantity(r.Context(), id, in.AvailableQuantity); err != nil {
		c.writeUpdateError(w, r, err)
		return
	}

	c.invalidate(r)
	response.Success(w, map[string]interface{}{"modifiedCount": 1})
}

// Update handles PATCH /product/{id} (admin): the full editable field set.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	var in productInput
	if !bind.Input(w, r, &in) {
		return
	}

	product := models.Product{
		ProductName:       in.ProductName,
		ShortDescription:  in.ShortDescription,
		MOQuantity:        in.MOQuantity,
		AvailableQuantity: in.AvailableQuantity,
		Price:             in.Price,
		Picture:           in.Picture,
	}

	if err := c.products.Update(r.Context(), id, product); err != nil {
		c.writeUpdateError(w, r, err)
		return
	}

	c.invalidate(r)
	response.Success(w, map[string]interface{}{"modifiedCount": 1})
}

// Delete handles DELETE /products/{id} (authenticated).
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	if err := c.products.Delete(r.Context(), id); err != nil {
		c.writeUpdateError(w, r, err)
		return
	}

	c.invalidate(r)
	response.Success(w, map[string]interface{}{"deletedCount": 1})
}

// UploadPicture handles POST /products/{id}/picture (admin): stores the
// multipart "picture" file on the configured disk and saves its public URL.
func (c *ProductController) UploadPicture(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxPictureBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		response.ValidationError(w, map[string]string{"picture": "The picture file is required."})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("products/%s/%s", id.Hex(), path.Base(header.Filename))
	url, err := c.pictures.Put(r.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("store picture failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := c.products.SetPicture(r.Context(), id, url); err != nil {
		c.writeUpdateError(w, r, err)
		return
	}

	c.invalidate(r)
	response.Success(w, map[string]string{"picture": url})
}

func (c *ProductController) writeUpdateError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Error("product write failed", "error", err)
	response.Error(w, http.StatusInternalServerError, "Internal Server Error")
}

func (c *ProductController) invalidate(r *http.Request) {
	if err := c.cache.Del(r.Context(), productCacheKey); err != nil {
		logger.WithCtx(r.Context()).Warn("invalidate product cache failed", "error", err)
	}
}
