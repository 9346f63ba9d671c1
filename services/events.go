package services

import "fightdeck/models"

// EventSink receives out-of-band notifications (match created, achievements
// unlocked) for delivery to connected clients. Implementations must not
// block; delivery is best-effort and never affects the mutation outcome.
type EventSink interface {
	Publish(event models.Event)
}

// nopSink is used when no event hub is wired (tests, batch tools).
type nopSink struct{}

func (nopSink) Publish(models.Event) {}
