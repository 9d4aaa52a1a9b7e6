package handlers

import (
	"net/http"

	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/metrics"
	"github.com/ltsmerch/storefront/internal/models"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/ltsmerch/storefront/internal/utils/response"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Submit godoc
//
//	@Summary	Upload a payment voucher for the latest unpaid order
//	@Tags		payments
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		voucher	formData	file	true	"Proof of payment"
//	@Success	201		{object}	response.APIResponse
//	@Router		/api/v1/payments [post]
func (h *PaymentHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.NoSessionUserError("You must be signed in to submit a payment"))

			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, errors.BadRequestError("Invalid multipart form").WithError(err))

			return
		}

		var voucher *models.FileUpload

		file, header, err := r.FormFile("voucher")
		if err == nil {
			defer file.Close()

			voucher = &models.FileUpload{
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Content:     file,
			}
		}

		payment, err := h.payments.SubmitPayment(r.Context(), claims.UserID, voucher)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Payment submission failed",
				"userID", claims.UserID, "error", err.Error())
			response.Error(w, err)

			return
		}

		metrics.RecordVoucherSubmitted()
		middleware.LoggerFromContext(r.Context()).Info("Payment voucher received",
			"userID", claims.UserID, "orderID", payment.OrderID, "amount", payment.Amount)

		response.Success(w, http.StatusCreated, payment)
	}
}

// ListByOrder godoc
//
//	@Summary	List payments attached to an order (admin)
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Order id"
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/admin/orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		payments, err := h.payments.ListPaymentsByOrder(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, payments)
	}
}

// Review godoc
//
//	@Summary	Approve or reject a pending payment (admin)
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int		true	"Payment id"
//	@Param		approve	query	bool	true	"Approve (true) or reject (false)"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/admin/payments/{id}/review [post]
func (h *PaymentHandler) Review() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		approve := r.URL.Query().Get("approve") == "true"

		payment, err := h.payments.ReviewPayment(r.Context(), id, approve)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, payment)
	}
}
