package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/metrics"
	"github.com/ltsmerch/storefront/internal/models"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/ltsmerch/storefront/internal/utils"
	"github.com/ltsmerch/storefront/internal/utils/response"
)

type CheckoutHandler struct {
	checkout  service.CheckoutService
	validator *validator.Validate
}

func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, validator: validator.New()}
}

// Begin godoc
//
//	@Summary	Preview the order: cart lines, shipping fee and total
//	@Tags		checkout
//	@Produce	json
//	@Security	BearerAuth
//	@Param		shipping_method	query	int	false	"Shipping method (1-3)"
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/checkout [get]
func (h *CheckoutHandler) Begin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		method, _ := strconv.Atoi(r.URL.Query().Get("shipping_method"))

		preview, err := h.checkout.BeginCheckout(r.Context(), claims.UserID, method)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, preview)
	}
}

// SubmitShipping godoc
//
//	@Summary	Place the order with a shipping address and method
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body	models.SubmitShippingRequest	true	"Shipping details"
//	@Success	201		{object}	response.APIResponse
//	@Router		/api/v1/checkout [post]
func (h *CheckoutHandler) SubmitShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.SubmitShippingRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		order, err := h.checkout.SubmitShipping(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Checkout failed",
				"userID", claims.UserID, "error", err.Error())
			response.Error(w, err)

			return
		}

		metrics.RecordOrderPlaced()
		middleware.LoggerFromContext(r.Context()).Info("Order placed",
			"userID", claims.UserID, "orderID", order.ID, "total", order.Total)

		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//
//	@Summary	Get one order (own orders only, unless admin)
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Order id"
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/orders/{id} [get]
func (h *CheckoutHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		order, err := h.checkout.GetOrder(r.Context(), claims.UserID, id, claims.IsAdmin)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary	List the signed-in user's orders
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query	int	false	"Page number"
//	@Param		size	query	int	false	"Page size"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/orders [get]
func (h *CheckoutHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		orders, err := h.checkout.ListOrdersByUser(r.Context(), claims.UserID, page, size)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// ListAllOrders godoc
//
//	@Summary	List every order (admin)
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query	int	false	"Page number"
//	@Param		size	query	int	false	"Page size"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/admin/orders [get]
func (h *CheckoutHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		orders, err := h.checkout.ListAllOrders(r.Context(), page, size)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// UpdateOrderStatus godoc
//
//	@Summary	Change an order's status (admin)
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int								true	"Order id"
//	@Param		request	body	models.UpdateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/admin/orders/{id}/status [put]
func (h *CheckoutHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		if err := h.checkout.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, nil)
	}
}

// DeleteOrder godoc
//
//	@Summary	Delete an order (admin)
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Order id"
//	@Success	204
//	@Router		/api/v1/admin/orders/{id} [delete]
func (h *CheckoutHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.checkout.DeleteOrder(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
