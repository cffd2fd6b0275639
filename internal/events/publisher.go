// Package events is the outbound surface toward downstream reward and
// gamification consumers. The engine only publishes; it never waits on or
// reads back from subscribers.
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const formCompletedChannel = "formflow.form.completed"

// FormCompleted is emitted once per full-form submission.
type FormCompleted struct {
	UserFormAnswerID uint   `json:"user_form_answer_id"`
	FormID           uint   `json:"form_id"`
	UserID           uint   `json:"user_id"`
	SessionID        string `json:"session_id"`
	HlpPointsEarned  int    `json:"hlp_points_earned"`
}

type Publisher interface {
	PublishFormCompleted(event FormCompleted)
}

type redisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

// PublishFormCompleted is fire-and-forget: a publish failure is logged but
// never fails the submission that triggered it.
func (p *redisPublisher) PublishFormCompleted(event FormCompleted) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Uint("userFormAnswerID", event.UserFormAnswerID).Msg("form completed event marshal failed")
		return
	}
	if err := p.client.Publish(context.Background(), formCompletedChannel, payload).Err(); err != nil {
		log.Error().Err(err).Uint("userFormAnswerID", event.UserFormAnswerID).Msg("form completed event publish failed")
		return
	}
	log.Info().Uint("formID", event.FormID).Uint("userID", event.UserID).Str("sessionID", event.SessionID).Msg("form completed event published")
}

// NopPublisher drops events. Tests use it.
type NopPublisher struct{}

func (NopPublisher) PublishFormCompleted(FormCompleted) {}
