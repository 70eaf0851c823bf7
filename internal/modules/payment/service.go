package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the settlement side of the marketplace. CreateIntent is the
// short request/response half: it hands the paying client a secret for the
// gateway flow. Settle is the asynchronous half, driven by the gateway's
// signed webhook: it records the money movement first (payments and payouts
// are the durable source of truth), then advances the job completed -> paid.
// Job-status sync is at-least-once and idempotent, so a retried delivery or
// a partial failure never double-counts a payout.
type Service struct {
	payments    PaymentRepository
	requests    RequestRepository
	assignments AssignedJobRepository
	pub         EventPublisher
	loggerf     func(format string, args ...interface{})

	webhookSecret string
	feePercent    int64
}

func NewService(
	payments PaymentRepository,
	requests RequestRepository,
	assignments AssignedJobRepository,
	pub EventPublisher,
	loggerf func(format string, args ...interface{}),
	webhookSecret string,
	feePercent int64,
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments:      payments,
		requests:      requests,
		assignments:   assignments,
		pub:           pub,
		loggerf:       loggerf,
		webhookSecret: webhookSecret,
		feePercent:    feePercent,
	}
}

// CreateIntent opens a gateway payment for a completed job's accepted price.
// The owner pays; the returned client secret is consumed by the paying
// client, and the gateway reports the outcome through the webhook.
func (s *Service) CreateIntent(ctx context.Context, jobID, callerID int64) (*CreateIntentResponse, error) {
	if s.webhookSecret == "" {
		return nil, ErrExternalService
	}
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}

	job, err := s.requests.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if job.OwnerID != callerID {
		return nil, ErrUnauthorized
	}
	if job.Status != domain.JobCompleted || job.AcceptedPrice == nil {
		return nil, ErrNotPayable
	}

	return &CreateIntentResponse{
		IntentID:     "pi_" + uuid.NewString(),
		ClientSecret: uuid.NewString(),
		Amount:       *job.AcceptedPrice,
		Currency:     "usd",
	}, nil
}

// VerifySignature checks the webhook HMAC over the raw body.
func (s *Service) VerifySignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return strings.EqualFold(signature, expected)
}

// Settle processes one verified webhook event. Succeeded events record the
// payment and the 90% payout exactly once (keyed by the gateway txn id) and
// drive the job to paid; failed events record a failed payment and leave the
// job alone.
func (s *Service) Settle(ctx context.Context, ev WebhookEvent) error {
	if ev.TxnID == "" || ev.JobID <= 0 {
		return ErrInvalidInput
	}

	switch ev.Type {
	case "payment.succeeded":
		return s.settleSucceeded(ctx, ev)
	case "payment.failed":
		return s.recordFailed(ctx, ev)
	default:
		s.loggerf("level=warn msg=unknown webhook event type=%s txn_id=%s", ev.Type, ev.TxnID)
		return nil
	}
}

func (s *Service) settleSucceeded(ctx context.Context, ev WebhookEvent) error {
	gross := ev.Amount
	net := gross * (100 - s.feePercent) / 100

	p := &domain.Payment{
		TxnID:       ev.TxnID,
		JobID:       ev.JobID,
		ProviderID:  ev.ProviderID,
		OwnerID:     ev.OwnerID,
		GrossAmount: gross,
		NetAmount:   net,
		Currency:    ev.Currency,
		Status:      domain.PaymentSucceeded,
	}
	inserted, err := s.payments.UpsertByTxnID(ctx, p)
	if err != nil {
		return err
	}
	if !inserted {
		s.loggerf("level=info msg=duplicate webhook delivery txn_id=%s", ev.TxnID)
	}

	// attempted on every delivery, not only the first insert: the payout is
	// keyed by txn id, so one lost to a partial failure is recreated on the
	// gateway's redelivery and one already written is a no-op
	payout := &domain.Payout{
		ProviderID: ev.ProviderID,
		JobID:      ev.JobID,
		TxnID:      ev.TxnID,
		Amount:     net,
	}
	if err := s.payments.UpsertPayoutByTxnID(ctx, payout); err != nil {
		s.loggerf("level=error msg=payout write failed txn_id=%s job_id=%d err=%v", ev.TxnID, ev.JobID, err)
		return err
	}

	changed, err := s.requests.MarkPaid(ctx, ev.JobID, ev.TxnID, gross, net, time.Now().UTC())
	if err != nil {
		// money movement is recorded; status sync is retried on redelivery
		s.loggerf("level=error msg=job paid transition failed job_id=%d txn_id=%s err=%v", ev.JobID, ev.TxnID, err)
		return err
	}
	if changed {
		if merr := s.assignments.UpdateStatus(ctx, ev.JobID, domain.JobPaid); merr != nil {
			s.loggerf("level=error msg=projection status sync failed job_id=%d status=paid err=%v", ev.JobID, merr)
		}
		if s.pub != nil {
			s.pub.Publish(events.JobTopic(ev.JobID), &events.Event{
				Type:    events.EventJobPaid,
				Payload: map[string]any{"job_id": ev.JobID, "net": net},
			})
			s.pub.Publish(events.UserTopic(ev.ProviderID), &events.Event{
				Type:    events.EventJobPaid,
				Payload: map[string]any{"job_id": ev.JobID, "net": net},
			})
		}
	}
	return nil
}

func (s *Service) recordFailed(ctx context.Context, ev WebhookEvent) error {
	p := &domain.Payment{
		TxnID:       ev.TxnID,
		JobID:       ev.JobID,
		ProviderID:  ev.ProviderID,
		OwnerID:     ev.OwnerID,
		GrossAmount: ev.Amount,
		Currency:    ev.Currency,
		Status:      domain.PaymentFailed,
	}
	if _, err := s.payments.UpsertByTxnID(ctx, p); err != nil {
		return err
	}
	s.loggerf("level=info msg=payment failed recorded txn_id=%s job_id=%d", ev.TxnID, ev.JobID)
	return nil
}

func (s *Service) ListPayouts(ctx context.Context, providerID int64) ([]domain.Payout, error) {
	if providerID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.payments.ListPayoutsByProvider(ctx, providerID)
}
