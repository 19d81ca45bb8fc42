package events

import (
	"context"
	"fmt"
	"html"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/nats-io/nats.go"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) bool
}

// CollabNotifier e-mails the other party when a request is created or answered.
// It runs as a supervised service.
type CollabNotifier struct {
	client      *Client
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	sender      EmailSender
}

func NewCollabNotifier(client *Client, profileRepo repository.ProfileRepository, userRepo repository.UserRepository, sender EmailSender) *CollabNotifier {
	return &CollabNotifier{
		client:      client,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		sender:      sender,
	}
}

func (n *CollabNotifier) String() string {
	return "collab-notifier"
}

func (n *CollabNotifier) Serve(ctx context.Context) error {
	if err := n.client.EnsureStream(CollabStream, []string{collabSubjects}); err != nil {
		return err
	}

	sub, err := n.client.SubscribeDurable(collabSubjects, "collab-notifier", "collab-notifiers", func(msg *nats.Msg) {
		var event domain.CollabEvent
		if err := DecodeEvent(msg, &event); err != nil {
			logging.Error().Err(err).Msg("[EVENTS] Undecodable collab event dropped")
			msg.Term()
			return
		}
		err := n.Handle(ctx, event)
		switch settle(err) {
		case settleTerm:
			logging.Warn().Err(err).Str("event_id", event.ID).Msg("[EVENTS] Collab event refers to missing records, dropped")
			msg.Term()
		case settleRetry:
			logging.Warn().Err(err).Str("event_id", event.ID).Msg("[EVENTS] Collab event handling failed")
			msg.Nak()
		default:
			msg.Ack()
		}
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		logging.Warn().Err(err).Msg("[EVENTS] Drain failed")
	}
	return ctx.Err()
}

type settlement int

const (
	settleAck settlement = iota
	settleRetry
	settleTerm
)

// settle decides what happens to a message after Handle. Records that no
// longer exist will not appear on redelivery, so those messages are terminated.
func settle(err error) settlement {
	switch {
	case err == nil:
		return settleAck
	case domain.KindOf(err) == domain.KindNotFound:
		return settleTerm
	default:
		return settleRetry
	}
}

// Handle notifies the receiver of a new request, or the sender of an answer.
// A failed delivery is logged by the sender and not retried.
func (n *CollabNotifier) Handle(ctx context.Context, event domain.CollabEvent) error {
	var recipientID, actorID int
	var subject string
	switch event.Type {
	case domain.EventCollabRequestCreated:
		recipientID, actorID = event.ReceiverID, event.SenderID
		subject = "New collaboration request"
	case domain.EventCollabRequestResponded:
		recipientID, actorID = event.SenderID, event.ReceiverID
		subject = fmt.Sprintf("Your collaboration request was %s", event.Status)
	default:
		return nil
	}

	recipient, err := n.profileRepo.GetByID(ctx, recipientID)
	if err != nil {
		return err
	}
	actor, err := n.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	user, err := n.userRepo.GetByID(ctx, recipient.UserID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>%s: <strong>%s</strong> (match score %.1f).</p>",
		html.EscapeString(recipient.DisplayName), html.EscapeString(subject),
		html.EscapeString(actor.DisplayName), event.MatchScore)
	n.sender.SendEmail(ctx, user.Email, subject, body)
	return nil
}
