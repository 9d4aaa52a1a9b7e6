package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	"github.com/ltsmerch/storefront/internal/storage"
	"github.com/ltsmerch/storefront/pkg/email"
)

// PaymentService handles manual payment intake: a user uploads a bank-transfer
// voucher, which attaches to their most recent unpaid order and waits for an
// admin to review it.
type PaymentService interface {
	SubmitPayment(ctx context.Context, userID int64, voucher *models.FileUpload) (*models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID int64) ([]models.Payment, error)
	ReviewPayment(ctx context.Context, paymentID int64, approve bool) (*models.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	files       storage.FileStore
	mailer      email.Sender
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	files storage.FileStore,
	mailer email.Sender,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		files:       files,
		mailer:      mailer,
	}
}

func (s *paymentService) SubmitPayment(ctx context.Context, userID int64, voucher *models.FileUpload) (*models.Payment, error) {
	if userID == 0 {
		return nil, errors.NoSessionUserError("You must be signed in to submit a payment")
	}

	if voucher == nil || voucher.Size == 0 {
		return nil, errors.NoFileError("A payment voucher file is required")
	}

	order, err := s.orderRepo.FindPendingOrderByUser(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NoPendingOrderError("No order is awaiting payment").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to find pending order").WithError(err)
	}

	path, err := s.files.Save(ctx, storage.ObjectName(voucher.FileName), voucher.ContentType, voucher.Size, voucher.Content)
	if err != nil {
		return nil, errors.StorageError("Failed to store payment voucher").WithError(err)
	}

	payment := &models.Payment{
		OrderID:     order.ID,
		UserID:      userID,
		Amount:      order.Total,
		Method:      models.PaymentMethodVoucher,
		VoucherPath: path,
		Status:      models.PaymentStatusAwaitingReview,
	}

	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, errors.DatabaseError("Failed to record payment").WithError(err)
	}

	s.notify(ctx, userID, "Payment received",
		fmt.Sprintf("We received your payment voucher for order #%d (%.2f). We will confirm it shortly.", order.ID, order.Total))

	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Payment not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	return payment, nil
}

func (s *paymentService) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]models.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list payments").WithError(err)
	}

	return payments, nil
}

// ReviewPayment records the admin's verdict. Approval also advances the order
// to paid; rejection leaves the order pending so the user can retry.
func (s *paymentService) ReviewPayment(ctx context.Context, paymentID int64, approve bool) (*models.Payment, error) {
	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != models.PaymentStatusAwaitingReview {
		return nil, errors.BadRequestError("Payment has already been reviewed")
	}

	status := models.PaymentStatusRejected
	if approve {
		status = models.PaymentStatusApproved
	}

	if err := s.paymentRepo.UpdatePaymentStatus(ctx, paymentID, status); err != nil {
		return nil, errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	payment.Status = status

	if approve {
		if err := s.orderRepo.UpdateOrderStatus(ctx, payment.OrderID, models.OrderStatusPaid); err != nil {
			return nil, errors.DatabaseError("Failed to mark order as paid").WithError(err)
		}

		s.notify(ctx, payment.UserID, "Payment confirmed",
			fmt.Sprintf("Your payment for order #%d has been confirmed. Thank you!", payment.OrderID))
	} else {
		s.notify(ctx, payment.UserID, "Payment could not be verified",
			fmt.Sprintf("We could not verify your payment voucher for order #%d. Please upload a new one.", payment.OrderID))
	}

	return payment, nil
}

// notify sends a best-effort email. Failures are logged, never returned: a
// dead mail relay must not fail a payment.
func (s *paymentService) notify(ctx context.Context, userID int64, subject, body string) {
	if s.mailer == nil {
		return
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		slog.Warn("Payment notification skipped, user lookup failed", slog.Int64("userID", userID), slog.String("error", err.Error()))

		return
	}

	msg := &email.Message{To: user.Email, Subject: subject, PlainText: body}

	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Warn("Payment notification failed", slog.Int64("userID", userID), slog.String("error", err.Error()))
	}
}
