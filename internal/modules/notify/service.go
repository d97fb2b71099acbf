// Package notify pushes assignment offers to partner devices over FCM.
package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"firebase.google.com/go/v4/messaging"

	"quickbite/internal/realtime"
	"quickbite/internal/types"
)

const tokenRoot = "push_tokens"

// Messenger is the slice of the FCM client this service needs.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type Service struct {
	msg   Messenger
	store realtime.Store
}

func NewService(msg Messenger, store realtime.Store) *Service {
	return &Service{msg: msg, store: store}
}

// AssignmentOffer is the payload pushed to the partner's device.
type AssignmentOffer struct {
	OrderID    types.ID
	Pickup     types.Point
	DistanceKm float64
}

// NotifyAssignment looks up the partner's device token and sends a data
// message. A partner without a registered token is not an error: the offer
// simply is not pushed.
func (s *Service) NotifyAssignment(ctx context.Context, partnerID types.ID, offer AssignmentOffer) error {
	if s.msg == nil {
		return nil
	}
	token, err := s.deviceToken(ctx, partnerID)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Data: map[string]string{
			"type":        "new_assignment",
			"order_id":    string(offer.OrderID),
			"pickup_lat":  strconv.FormatFloat(offer.Pickup.Lat, 'f', 6, 64),
			"pickup_lng":  strconv.FormatFloat(offer.Pickup.Lng, 'f', 6, 64),
			"distance_km": strconv.FormatFloat(offer.DistanceKm, 'f', 2, 64),
		},
		Notification: &messaging.Notification{
			Title: "New delivery",
			Body:  fmt.Sprintf("Pickup %.1f km away", offer.DistanceKm),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	messageID, err := s.msg.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending FCM to partner %s: %w", partnerID, err)
	}
	log.Printf("notify: FCM sent for order %s, message_id=%s", offer.OrderID, messageID)
	return nil
}

// RegisterToken stores the partner's device token.
func (s *Service) RegisterToken(ctx context.Context, partnerID types.ID, token string) (bool, error) {
	if partnerID == "" || token == "" {
		return false, nil
	}
	if s.store == nil || !s.store.Ready() {
		return false, nil
	}
	err := s.store.Patch(ctx, tokenRoot+"/"+string(partnerID), map[string]any{"token": token})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) deviceToken(ctx context.Context, partnerID types.ID) (string, error) {
	if partnerID == "" || s.store == nil || !s.store.Ready() {
		return "", nil
	}
	var rec struct {
		Token string `json:"token"`
	}
	if err := s.store.Get(ctx, tokenRoot+"/"+string(partnerID), &rec); err != nil {
		return "", err
	}
	return rec.Token, nil
}
