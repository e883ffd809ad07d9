package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kasmoni-app-go/internal/domain/month"
	"kasmoni-app-go/internal/domain/slots"
	"github.com/google/uuid"
)

const MaxBatchItems = 100

type BatchItemStatus string

const (
	BatchItemCreated          BatchItemStatus = "created"
	BatchItemSkippedDuplicate BatchItemStatus = "skipped_duplicate"
	BatchItemFailed           BatchItemStatus = "failed"
)

type BatchStatus string

const (
	BatchStatusSuccess        BatchStatus = "success"
	BatchStatusPartialSuccess BatchStatus = "partial_success"
	BatchStatusFailed         BatchStatus = "failed"
)

type BatchInput struct {
	MemberID       int64
	PaymentDate    time.Time
	PaymentMonth   month.Month
	PaymentMethod  Method
	SenderBankID   *int64
	ReceiverBankID *int64
	Status         Status
	Notes          string
	Items          []BatchItem
}

type BatchItem struct {
	GroupID   int64
	MonthDate month.Month
}

type BatchItemResult struct {
	GroupID   int64           `json:"group_id"`
	MonthDate month.Month     `json:"month_date"`
	Status    BatchItemStatus `json:"status"`
	PaymentID *int64          `json:"payment_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type BatchSummary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type BatchResult struct {
	BatchID    string            `json:"batch_id"`
	Status     BatchStatus       `json:"status"`
	Summary    BatchSummary      `json:"summary"`
	Results    []BatchItemResult `json:"results"`
	ServerTime time.Time         `json:"server_time"`
}

// CreateBatch records one payment per selected combination. Items are processed
// sequentially and independently: a failed item does not roll back earlier
// ones, and the per-item results let callers tell full, partial and failed
// batches apart. Combinations that already carry a payment for the payment
// month are reported as skipped, not failed.
func (s *Service) CreateBatch(ctx context.Context, input BatchInput) (*BatchResult, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("at least one combination is required")
	}
	if len(input.Items) > MaxBatchItems {
		return nil, fmt.Errorf("batch exceeds %d items", MaxBatchItems)
	}

	result := BatchResult{
		BatchID: uuid.NewString(),
		Results: make([]BatchItemResult, 0, len(input.Items)),
	}

	for _, item := range input.Items {
		itemResult := BatchItemResult{GroupID: item.GroupID, MonthDate: item.MonthDate}

		payment, err := s.createBatchItem(ctx, input, item)
		switch {
		case err == nil:
			itemResult.Status = BatchItemCreated
			itemResult.PaymentID = &payment.ID
			result.Summary.Created++
		case errors.Is(err, ErrDuplicatePayment):
			itemResult.Status = BatchItemSkippedDuplicate
			result.Summary.Skipped++
		default:
			s.log.BusinessError("payments: batch item failed", err, "member_id", input.MemberID, "group_id", item.GroupID, "month", item.MonthDate)
			itemResult.Status = BatchItemFailed
			itemResult.Error = err.Error()
			result.Summary.Failed++
		}

		result.Results = append(result.Results, itemResult)
	}

	result.Summary.Total = len(input.Items)
	result.Status = batchStatus(result.Summary)
	result.ServerTime = time.Now().UTC()

	return &result, nil
}

func (s *Service) createBatchItem(ctx context.Context, input BatchInput, item BatchItem) (*Payment, error) {
	group, err := s.groups.Get(ctx, item.GroupID)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, CreatePaymentInput{
		MemberID:       input.MemberID,
		GroupID:        item.GroupID,
		Slot:           slots.RefFromComposite(item.GroupID, input.MemberID, item.MonthDate),
		PaymentDate:    input.PaymentDate,
		PaymentMonth:   input.PaymentMonth,
		Amount:         group.MonthlyAmount,
		PaymentMethod:  input.PaymentMethod,
		SenderBankID:   input.SenderBankID,
		ReceiverBankID: input.ReceiverBankID,
		Status:         input.Status,
		Notes:          input.Notes,
	})
}

func batchStatus(summary BatchSummary) BatchStatus {
	switch {
	case summary.Created == 0 && summary.Failed > 0:
		return BatchStatusFailed
	case summary.Failed > 0:
		return BatchStatusPartialSuccess
	default:
		return BatchStatusSuccess
	}
}
