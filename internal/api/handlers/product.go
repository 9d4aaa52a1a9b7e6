package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/ltsmerch/storefront/internal/utils"
	"github.com/ltsmerch/storefront/internal/utils/response"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type ProductHandler struct {
	catalog   service.CatalogService
	validator *validator.Validate
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog, validator: validator.New()}
}

// Create godoc
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		product	formData	string	true	"Product JSON"
//	@Param		image	formData	file	false	"Product image"
//	@Success	201		{object}	response.APIResponse
//	@Router		/api/v1/products [post]
func (h *ProductHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, errors.BadRequestError("Invalid multipart form").WithError(err))

			return
		}

		var req models.CreateProductRequest

		if err := json.Unmarshal([]byte(r.FormValue("product")), &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid product JSON").WithError(err))

			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		var image *models.FileUpload

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()

			image = &models.FileUpload{
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Content:     file,
			}
		}

		product, err := h.catalog.CreateProduct(r.Context(), &req, image)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Product creation failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}

// Get godoc
//
//	@Summary	Get a product with derived stock
//	@Tags		products
//	@Produce	json
//	@Param		id	path	int	true	"Product id"
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/products/{id} [get]
func (h *ProductHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		product, err := h.catalog.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// List godoc
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Param		page	query	int	false	"Page number"
//	@Param		size	query	int	false	"Page size"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/products [get]
func (h *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		products, total, err := h.catalog.ListProducts(r.Context(), page, size)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"products": products,
			"total":    total,
		})
	}
}

// Update godoc
//
//	@Summary	Update a product (optimistic concurrency via updated_at)
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int							true	"Product id"
//	@Param		request	body	models.UpdateProductRequest	true	"Fields to change"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/products/{id} [put]
func (h *ProductHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateProductRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		product, err := h.catalog.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// Delete godoc
//
//	@Summary	Delete a product and its variants
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Product id"
//	@Success	204
//	@Router		/api/v1/products/{id} [delete]
func (h *ProductHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// CreateVariant godoc
//
//	@Summary	Add a (category, color, size) variant to a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int							true	"Product id"
//	@Param		request	body	models.CreateVariantRequest	true	"Variant"
//	@Success	201		{object}	response.APIResponse
//	@Router		/api/v1/products/{id}/variants [post]
func (h *ProductHandler) CreateVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.CreateVariantRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		variant, err := h.catalog.CreateVariant(r.Context(), id, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Variant creation failed", "productID", id, "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, variant)
	}
}

// ListVariants godoc
//
//	@Summary	List a product's variants
//	@Tags		products
//	@Produce	json
//	@Param		id	path	int	true	"Product id"
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/products/{id}/variants [get]
func (h *ProductHandler) ListVariants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		variants, err := h.catalog.ListVariants(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, variants)
	}
}

// pathID parses the named path parameter as an int64, writing the error
// response on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		response.Error(w, errors.BadRequestError("Invalid "+name+" parameter"))

		return 0, false
	}

	return id, true
}
