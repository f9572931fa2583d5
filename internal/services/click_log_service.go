package services

import (
	"encoding/json"
	"time"

	"github.com/formteam/formtrack-backend/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ClickSink stores click rows
type ClickSink interface {
	Insert(log *models.ClickLog) error
}

// ClickPublisher carries click events to an out-of-process consumer
type ClickPublisher interface {
	PublishJSON(queueName string, payload interface{}) error
}

// ClickMetadata is the request context captured with a click
type ClickMetadata struct {
	IPAddress string
	UserAgent string
	Referer   string
}

// ClickLogService records clicks best-effort. When a message queue is
// available the redirect path only publishes; a consumer goroutine persists
// the rows. Without a queue it falls back to an async direct insert. Failures
// on either path are logged and swallowed: a click that cannot be recorded
// must never delay or break the redirect.
type ClickLogService struct {
	sink      ClickSink
	publisher ClickPublisher
	stopChan  chan struct{}
}

func NewClickLogService(sink ClickSink, publisher ClickPublisher) *ClickLogService {
	return &ClickLogService{
		sink:      sink,
		publisher: publisher,
		stopChan:  make(chan struct{}),
	}
}

// Record logs one click against a campaign. Fire-and-forget.
func (s *ClickLogService) Record(campaignID uint, meta ClickMetadata) {
	if s.publisher != nil {
		event := models.ClickEvent{
			EventID:    uuid.NewString(),
			CampaignID: campaignID,
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
			Referer:    meta.Referer,
			OccurredAt: time.Now(),
		}
		err := s.publisher.PublishJSON(ClickQueueName, event)
		if err == nil {
			return
		}
		logrus.Warnf("Failed to publish click event for campaign %d, falling back to direct insert: %v", campaignID, err)
	}

	go s.insert(campaignID, meta, time.Now())
}

func (s *ClickLogService) insert(campaignID uint, meta ClickMetadata, at time.Time) {
	log := &models.ClickLog{
		CampaignID: campaignID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Referer:    meta.Referer,
		CreatedAt:  at,
	}
	if err := s.sink.Insert(log); err != nil {
		logrus.Errorf("Failed to insert click log for campaign %d: %v", campaignID, err)
	}
}

// StartConsumer consumes click events from the queue and persists them
func (s *ClickLogService) StartConsumer(mq *RabbitMQService) error {
	deliveries, err := mq.Consume(ClickQueueName)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case delivery, ok := <-deliveries:
				if !ok {
					logrus.Warn("Click event channel closed")
					return
				}
				var event models.ClickEvent
				if err := json.Unmarshal(delivery.Body, &event); err != nil {
					logrus.Errorf("Failed to decode click event: %v", err)
					delivery.Nack(false, false)
					continue
				}
				s.insert(event.CampaignID, ClickMetadata{
					IPAddress: event.IPAddress,
					UserAgent: event.UserAgent,
					Referer:   event.Referer,
				}, event.OccurredAt)
				delivery.Ack(false)
			case <-s.stopChan:
				return
			}
		}
	}()

	logrus.Info("Click event consumer started")
	return nil
}

// StopConsumer stops the consumer goroutine
func (s *ClickLogService) StopConsumer() {
	close(s.stopChan)
}
