package models

import "time"

type PaymentStatus string

const (
	// PaymentStatusAwaitingReview marks an uploaded voucher pending manual
	// verification by an admin.
	PaymentStatusAwaitingReview PaymentStatus = "awaiting_review"
	PaymentStatusApproved       PaymentStatus = "approved"
	PaymentStatusRejected       PaymentStatus = "rejected"
)

const PaymentMethodVoucher = "voucher"

// Payment links an uploaded proof-of-payment file to an order. The amount is
// copied from the order total at intake time.
type Payment struct {
	ID          int64         `json:"id"`
	OrderID     int64         `json:"order_id"`
	UserID      int64         `json:"user_id"`
	Amount      float64       `json:"amount"`
	Method      string        `json:"method"`
	VoucherPath string        `json:"voucher_path"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
