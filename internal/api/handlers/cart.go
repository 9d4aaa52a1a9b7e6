package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/ltsmerch/storefront/internal/utils"
	"github.com/ltsmerch/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// Get godoc
//
//	@Summary	Get the signed-in user's cart
//	@Tags		cart
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/cart [get]
func (h *CartHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary	Add a size/color selection to the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body	models.AddItemRequest	true	"Selection"
//	@Success	201		{object}	response.APIResponse
//	@Router		/api/v1/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddItemRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		item, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Add to cart failed",
				"userID", claims.UserID, "sizeID", req.SizeID, "colorID", req.ColorID, "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

// UpdateItem godoc
//
//	@Summary	Change a cart line's quantity
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body	models.UpdateQuantityRequest	true	"New quantity"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/cart/items [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateQuantityRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		if err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, nil)
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a cart line
//	@Tags		cart
//	@Produce	json
//	@Security	BearerAuth
//	@Param		itemID	path	int	true	"Cart item id"
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/cart/items/{itemID} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		itemID, ok := pathID(w, r, "itemID")
		if !ok {
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), claims.UserID, itemID); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, nil)
	}
}
