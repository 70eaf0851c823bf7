package bid

import (
	"context"
	"testing"

	"boatwork/internal/domain"
	"boatwork/internal/modules/events"
	"boatwork/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBidRepository struct {
	mock.Mock
}

func (m *MockBidRepository) Create(ctx context.Context, b *domain.Bid) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 777 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBidRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Bid, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bid), args.Error(1)
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

func (m *MockRequestRepository) AcceptBid(ctx context.Context, jobID, bidID int64) (*domain.ServiceRequest, *domain.Bid, error) {
	args := m.Called(ctx, jobID, bidID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Get(1).(*domain.Bid), args.Error(2)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBidPlaced(ctx context.Context, ownerID, jobID, bidID, price int64) error {
	args := m.Called(ctx, ownerID, jobID, bidID, price)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBidAccepted(ctx context.Context, providerID, jobID int64) error {
	args := m.Called(ctx, providerID, jobID)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(topic string, event *events.Event) {
	m.Called(topic, event)
}

func openJob(id, ownerID int64) *domain.ServiceRequest {
	return &domain.ServiceRequest{
		ID:          id,
		OwnerID:     ownerID,
		BoatID:      1,
		ServiceType: "hull_cleaning",
		Budget:      500000,
		Status:      domain.JobOpen,
	}
}

func TestService_SubmitBid_Success(t *testing.T) {
	mockBids := new(MockBidRepository)
	mockRequests := new(MockRequestRepository)
	mockNotifs := new(MockNotificationSender)
	mockPub := new(MockEventPublisher)

	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(openJob(1, 10), nil)
	mockBids.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyBidPlaced", mock.Anything, int64(10), int64(1), int64(777), int64(400000)).Return(nil)
	mockPub.On("Publish", events.JobTopic(1), mock.Anything).Return()
	mockPub.On("Publish", events.UserTopic(10), mock.Anything).Return()

	service := NewService(mockBids, mockRequests, mockNotifs, mockPub)

	b, err := service.SubmitBid(context.Background(), 1, 20, 400000, "can do it tomorrow")

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, int64(20), b.ProviderID)
	assert.Equal(t, int64(400000), b.Price)
	mockNotifs.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestService_SubmitBid_InvalidPrice(t *testing.T) {
	service := NewService(new(MockBidRepository), new(MockRequestRepository), nil, nil)

	_, err := service.SubmitBid(context.Background(), 1, 20, 0, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.SubmitBid(context.Background(), 1, 20, -100, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SubmitBid_DuplicateFromSameProviderAllowed(t *testing.T) {
	mockBids := new(MockBidRepository)
	mockRequests := new(MockRequestRepository)

	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(openJob(1, 10), nil)
	mockBids.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	service := NewService(mockBids, mockRequests, nil, nil)

	_, err := service.SubmitBid(context.Background(), 1, 20, 400000, "first offer")
	assert.NoError(t, err)

	_, err = service.SubmitBid(context.Background(), 1, 20, 350000, "revised offer")
	assert.NoError(t, err)

	mockBids.AssertExpectations(t)
}

func TestService_AcceptBid_AssignsJob(t *testing.T) {
	mockBids := new(MockBidRepository)
	mockRequests := new(MockRequestRepository)
	mockNotifs := new(MockNotificationSender)
	mockPub := new(MockEventPublisher)

	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(openJob(1, 10), nil)

	providerID := int64(20)
	price := int64(400000)
	assigned := openJob(1, 10)
	assigned.Status = domain.JobAssigned
	assigned.AcceptedBidID = ptr(int64(5))
	assigned.AcceptedProviderID = &providerID
	assigned.AcceptedPrice = &price
	winning := &domain.Bid{ID: 5, JobID: 1, ProviderID: providerID, Price: price, Accepted: true}
	mockRequests.On("AcceptBid", mock.Anything, int64(1), int64(5)).Return(assigned, winning, nil)

	mockNotifs.On("NotifyBidAccepted", mock.Anything, providerID, int64(1)).Return(nil)
	mockPub.On("Publish", events.JobTopic(1), mock.Anything).Return()
	mockPub.On("Publish", events.UserTopic(providerID), mock.Anything).Return()

	service := NewService(mockBids, mockRequests, mockNotifs, mockPub)

	job, err := service.AcceptBid(context.Background(), 1, 5, 10)

	assert.NoError(t, err)
	assert.Equal(t, domain.JobAssigned, job.Status)
	assert.Equal(t, providerID, *job.AcceptedProviderID)
	assert.Equal(t, price, *job.AcceptedPrice)
	mockNotifs.AssertExpectations(t)
}

func TestService_AcceptBid_NotOwner(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(openJob(1, 10), nil)

	service := NewService(new(MockBidRepository), mockRequests, nil, nil)

	_, err := service.AcceptBid(context.Background(), 1, 5, 99)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_AcceptBid_SecondAcceptanceRejected(t *testing.T) {
	mockRequests := new(MockRequestRepository)

	taken := openJob(1, 10)
	taken.Status = domain.JobAssigned
	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(taken, nil)

	service := NewService(new(MockBidRepository), mockRequests, nil, nil)

	_, err := service.AcceptBid(context.Background(), 1, 6, 10)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	mockRequests.AssertNotCalled(t, "AcceptBid", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_AcceptBid_RaceLostInRepository(t *testing.T) {
	mockRequests := new(MockRequestRepository)

	// the pre-check read still sees open, the locked transaction does not
	mockRequests.On("GetByID", mock.Anything, int64(1)).Return(openJob(1, 10), nil)
	mockRequests.On("AcceptBid", mock.Anything, int64(1), int64(5)).
		Return(nil, nil, repository.ErrJobNotOpen)

	service := NewService(new(MockBidRepository), mockRequests, nil, nil)

	_, err := service.AcceptBid(context.Background(), 1, 5, 10)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func ptr[T any](v T) *T { return &v }
