package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) UpsertByTxnID(ctx context.Context, p *domain.Payment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) UpsertPayoutByTxnID(ctx context.Context, p *domain.Payout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListPayoutsByProvider(ctx context.Context, providerID int64) ([]domain.Payout, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payout), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *MockRequestRepository) MarkPaid(ctx context.Context, jobID int64, txnID string, gross, net int64, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, jobID, txnID, gross, net, paidAt)
	return args.Bool(0), args.Error(1)
}

type MockAssignedJobRepository struct {
	mock.Mock
}

func (m *MockAssignedJobRepository) UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error {
	args := m.Called(ctx, jobID, status)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(topic string, event *events.Event) {
	m.Called(topic, event)
}

func newTestService(payments *MockPaymentRepository, requests *MockRequestRepository, assignments *MockAssignedJobRepository, pub *MockEventPublisher) *Service {
	var p EventPublisher
	if pub != nil {
		p = pub
	}
	return NewService(payments, requests, assignments, p, nil, "whsec_test", 10)
}

func succeededEvent() WebhookEvent {
	return WebhookEvent{
		Type:       "payment.succeeded",
		TxnID:      "txn_abc",
		JobID:      1,
		ProviderID: 20,
		OwnerID:    10,
		Amount:     500000,
		Currency:   "usd",
	}
}

func TestService_Settle_Succeeded_PaysOutNinetyPercent(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockRequests := new(MockRequestRepository)
	mockAssignments := new(MockAssignedJobRepository)
	mockPub := new(MockEventPublisher)

	mockPayments.On("UpsertByTxnID", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.TxnID == "txn_abc" && p.GrossAmount == 500000 && p.NetAmount == 450000
	})).Return(true, nil)
	mockPayments.On("UpsertPayoutByTxnID", mock.Anything, mock.MatchedBy(func(p *domain.Payout) bool {
		return p.ProviderID == 20 && p.Amount == 450000 && p.TxnID == "txn_abc"
	})).Return(nil)
	mockRequests.On("MarkPaid", mock.Anything, int64(1), "txn_abc", int64(500000), int64(450000), mock.Anything).Return(true, nil)
	mockAssignments.On("UpdateStatus", mock.Anything, int64(1), domain.JobPaid).Return(nil)
	mockPub.On("Publish", events.JobTopic(1), mock.Anything).Return()
	mockPub.On("Publish", events.UserTopic(20), mock.Anything).Return()

	service := newTestService(mockPayments, mockRequests, mockAssignments, mockPub)

	err := service.Settle(context.Background(), succeededEvent())

	assert.NoError(t, err)
	mockPayments.AssertExpectations(t)
	mockRequests.AssertExpectations(t)
	mockAssignments.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestService_Settle_DuplicateDeliveryIsIdempotent(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockRequests := new(MockRequestRepository)
	mockAssignments := new(MockAssignedJobRepository)

	// second delivery of the same txn: no insert, payout upsert is a no-op,
	// job already paid
	mockPayments.On("UpsertByTxnID", mock.Anything, mock.Anything).Return(false, nil)
	mockPayments.On("UpsertPayoutByTxnID", mock.Anything, mock.Anything).Return(nil)
	mockRequests.On("MarkPaid", mock.Anything, int64(1), "txn_abc", int64(500000), int64(450000), mock.Anything).Return(false, nil)

	service := newTestService(mockPayments, mockRequests, mockAssignments, nil)

	err := service.Settle(context.Background(), succeededEvent())

	assert.NoError(t, err)
	mockAssignments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Settle_PayoutRecoveredOnRedelivery(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockRequests := new(MockRequestRepository)
	mockAssignments := new(MockAssignedJobRepository)

	// first delivery: payment row lands, payout write dies
	mockPayments.On("UpsertByTxnID", mock.Anything, mock.Anything).Return(true, nil).Once()
	mockPayments.On("UpsertPayoutByTxnID", mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()

	service := newTestService(mockPayments, mockRequests, mockAssignments, nil)

	err := service.Settle(context.Background(), succeededEvent())
	assert.Error(t, err)
	mockRequests.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// redelivery: payment row is a duplicate, but the payout still gets
	// written and settlement completes
	mockPayments.On("UpsertByTxnID", mock.Anything, mock.Anything).Return(false, nil).Once()
	mockPayments.On("UpsertPayoutByTxnID", mock.Anything, mock.MatchedBy(func(p *domain.Payout) bool {
		return p.TxnID == "txn_abc" && p.Amount == 450000
	})).Return(nil).Once()
	mockRequests.On("MarkPaid", mock.Anything, int64(1), "txn_abc", int64(500000), int64(450000), mock.Anything).Return(true, nil)
	mockAssignments.On("UpdateStatus", mock.Anything, int64(1), domain.JobPaid).Return(nil)

	err = service.Settle(context.Background(), succeededEvent())
	assert.NoError(t, err)
	mockPayments.AssertExpectations(t)
	mockRequests.AssertExpectations(t)
}

func TestService_Settle_FailedEventLeavesJobAlone(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockRequests := new(MockRequestRepository)
	mockAssignments := new(MockAssignedJobRepository)

	mockPayments.On("UpsertByTxnID", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentFailed
	})).Return(true, nil)

	service := newTestService(mockPayments, mockRequests, mockAssignments, nil)

	ev := succeededEvent()
	ev.Type = "payment.failed"
	err := service.Settle(context.Background(), ev)

	assert.NoError(t, err)
	mockRequests.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Settle_MissingTxnID(t *testing.T) {
	service := newTestService(new(MockPaymentRepository), new(MockRequestRepository), new(MockAssignedJobRepository), nil)

	ev := succeededEvent()
	ev.TxnID = ""
	err := service.Settle(context.Background(), ev)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_VerifySignature(t *testing.T) {
	service := newTestService(new(MockPaymentRepository), new(MockRequestRepository), new(MockAssignedJobRepository), nil)

	body := []byte(`{"type":"payment.succeeded","txn_id":"txn_abc"}`)
	mac := hmac.New(sha256.New, []byte("whsec_test"))
	mac.Write(body)
	good := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, service.VerifySignature(body, good))
	assert.True(t, service.VerifySignature(body, strings.ToUpper(good)))
	assert.False(t, service.VerifySignature(body, "deadbeef"))
	assert.False(t, service.VerifySignature([]byte("tampered"), good))
}

func TestService_CreateIntent_OnlyForCompletedJobs(t *testing.T) {
	mockRequests := new(MockRequestRepository)

	price := int64(500000)
	providerID := int64(20)
	job := &domain.ServiceRequest{
		ID:                 1,
		OwnerID:            10,
		Status:             domain.JobInProgress,
		AcceptedProviderID: &providerID,
		AcceptedPrice:      &price,
	}
	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(job, nil)

	service := newTestService(new(MockPaymentRepository), mockRequests, new(MockAssignedJobRepository), nil)

	_, err := service.CreateIntent(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNotPayable)
}

func TestService_CreateIntent_Success(t *testing.T) {
	mockRequests := new(MockRequestRepository)

	price := int64(500000)
	providerID := int64(20)
	job := &domain.ServiceRequest{
		ID:                 1,
		OwnerID:            10,
		Status:             domain.JobCompleted,
		AcceptedProviderID: &providerID,
		AcceptedPrice:      &price,
	}
	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(job, nil)

	service := newTestService(new(MockPaymentRepository), mockRequests, new(MockAssignedJobRepository), nil)

	res, err := service.CreateIntent(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(500000), res.Amount)
	assert.NotEmpty(t, res.IntentID)
	assert.NotEmpty(t, res.ClientSecret)
}
