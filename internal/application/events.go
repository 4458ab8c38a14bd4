package application

import (
	"log"
	"sync"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

// TransitionEvent describes a committed status change.
type TransitionEvent struct {
	SubmissionID  string            `json:"submission_id"`
	ReferenceCode string            `json:"reference_code"`
	Action        string            `json:"action"`
	From          submission.Status `json:"from_status"`
	To            submission.Status `json:"to_status"`
	Decision      review.Decision   `json:"decision,omitempty"`
	ActorID       string            `json:"actor_id"`
	ActorRole     user.Role         `json:"actor_role"`
	OccurredAt    time.Time         `json:"occurred_at"`

	institution string
	creatorID   string
}

func newTransitionEvent(action string, actor workflow.Actor, from submission.Status, to submission.Submission) TransitionEvent {
	return TransitionEvent{
		SubmissionID:  to.ID,
		ReferenceCode: to.ReferenceCode,
		Action:        action,
		From:          from,
		To:            to.Status,
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		OccurredAt:    time.Now(),
		institution:   to.Institution,
		creatorID:     to.CreatorID,
	}
}

type subscriber struct {
	actor workflow.Actor
	ch    chan TransitionEvent
}

// EventHub fans committed transitions out to live subscribers. It only ever
// sees events after their transaction commits, and a slow subscriber loses
// events rather than blocking the publisher.
type EventHub struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	buffer int
}

func NewEventHub(buffer int) *EventHub {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventHub{
		subs:   make(map[uint64]*subscriber),
		buffer: buffer,
	}
}

// Subscribe registers actor for every event it is allowed to see. The
// returned cancel func closes the channel and is safe to call twice.
func (h *EventHub) Subscribe(actor workflow.Actor) (<-chan TransitionEvent, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	sub := &subscriber{actor: actor, ch: make(chan TransitionEvent, h.buffer)}
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(sub.ch)
			h.mu.Unlock()
		})
	}
	return sub.ch, cancel
}

func (h *EventHub) Publish(ev TransitionEvent) {
	if h == nil {
		return
	}
	target := submission.Submission{Institution: ev.institution, CreatorID: ev.creatorID}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if !workflow.CanView(sub.actor, target) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			log.Printf("[events] dropping %s event for slow subscriber %s", ev.SubmissionID, sub.actor.UserID)
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
