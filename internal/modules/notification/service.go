package notification

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// Service writes in-app notification rows and pushes short texts to the
// parties of a job. All Notify methods are best-effort: callers fire and
// forget, delivery failure is logged and never propagated into a lifecycle
// operation.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) create(ctx context.Context, n *Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		log.Printf("level=error msg=notification write failed user_id=%d type=%s err=%v", n.UserID, n.Type, err)
		return err
	}
	return nil
}

func (s *Service) NotifyBidPlaced(ctx context.Context, ownerID, jobID, bidID, price int64) error {
	return s.create(ctx, &Notification{
		UserID: ownerID,
		Type:   TypeBidPlaced,
		Title:  "New bid on your request",
		Body:   fmt.Sprintf("A provider offered %d for request #%d", price, jobID),
		JobID:  jobID,
	})
}

func (s *Service) NotifyBidAccepted(ctx context.Context, providerID, jobID int64) error {
	return s.create(ctx, &Notification{
		UserID: providerID,
		Type:   TypeBidAccepted,
		Title:  "Your bid was accepted",
		Body:   fmt.Sprintf("You are assigned to job #%d", jobID),
		JobID:  jobID,
	})
}

func (s *Service) NotifyJobStatusChanged(ctx context.Context, userID, jobID int64, status string) error {
	typ := TypeJobStarted
	switch status {
	case "completed":
		typ = TypeJobDone
	case "open":
		typ = TypeJobCancel
	case "paid":
		typ = TypeJobPaid
	case "reviewed":
		typ = TypeReviewed
	}
	return s.create(ctx, &Notification{
		UserID: userID,
		Type:   typ,
		Title:  "Job update",
		Body:   fmt.Sprintf("Job #%d is now %s", jobID, status),
		JobID:  jobID,
	})
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]Notification, int64, error) {
	var list []Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}

	var unread int64
	err = s.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&unread).Error
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	res := s.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", sql.NullTime{Time: time.Now(), Valid: true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", sql.NullTime{Time: time.Now(), Valid: true}).Error
}
