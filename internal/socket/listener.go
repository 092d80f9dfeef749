package socket

import (
	"context"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// EventScope carries the shared state of one routed event: the connection
// it arrived on, the live match, and (for player-scoped listeners) the
// participant whose player is being updated.
type EventScope struct {
	Server      *ServerContext
	Match       *models.Match
	Participant *models.Participant
}

// Listener reacts to match events for one subject. The same hook set runs
// twice per event: first over match participants, then over lifetime
// player documents. Subjects are mutated in place; the router writes them
// back after the chain completes.
type Listener[S any] interface {
	OnKill(ctx context.Context, scope *EventScope, subject *S, data *models.PlayerDeathData, firstBlood bool) error
	OnDeath(ctx context.Context, scope *EventScope, subject *S, data *models.PlayerDeathData, firstBlood bool) error
	OnChat(ctx context.Context, scope *EventScope, subject *S, data *models.PlayerChatData) error
	OnKillstreak(ctx context.Context, scope *EventScope, subject *S, amount int) error
	OnKillstreakEnd(ctx context.Context, scope *EventScope, subject *S, amount int) error
	OnPartyJoin(ctx context.Context, scope *EventScope, subject *S, partyName string) error
	OnPartyLeave(ctx context.Context, scope *EventScope, subject *S) error
	OnMatchEnd(ctx context.Context, scope *EventScope, subject *S, data *models.MatchEndData) error
	OnDestroyableDamage(ctx context.Context, scope *EventScope, subject *S, destroyable *models.DestroyableGoal, damage int) error
	OnDestroyableDestroy(ctx context.Context, scope *EventScope, subject *S, percentage float64, blockCount int) error
	OnCoreLeak(ctx context.Context, scope *EventScope, subject *S, percentage float64, blockCount int) error
	OnControlPointCapture(ctx context.Context, scope *EventScope, subject *S, contributors int) error
	OnFlagPlace(ctx context.Context, scope *EventScope, subject *S, heldTime int64) error
	OnFlagPickup(ctx context.Context, scope *EventScope, subject *S) error
	OnFlagDrop(ctx context.Context, scope *EventScope, subject *S, heldTime int64) error
	OnFlagDefend(ctx context.Context, scope *EventScope, subject *S) error
	OnWoolPlace(ctx context.Context, scope *EventScope, subject *S, heldTime int64) error
	OnWoolPickup(ctx context.Context, scope *EventScope, subject *S) error
	OnWoolDrop(ctx context.Context, scope *EventScope, subject *S) error
	OnWoolDefend(ctx context.Context, scope *EventScope, subject *S) error
}

// BaseListener is the no-op default; concrete listeners embed it and
// override only the hooks they care about.
type BaseListener[S any] struct{}

func (BaseListener[S]) OnKill(context.Context, *EventScope, *S, *models.PlayerDeathData, bool) error {
	return nil
}
func (BaseListener[S]) OnDeath(context.Context, *EventScope, *S, *models.PlayerDeathData, bool) error {
	return nil
}
func (BaseListener[S]) OnChat(context.Context, *EventScope, *S, *models.PlayerChatData) error {
	return nil
}
func (BaseListener[S]) OnKillstreak(context.Context, *EventScope, *S, int) error    { return nil }
func (BaseListener[S]) OnKillstreakEnd(context.Context, *EventScope, *S, int) error { return nil }
func (BaseListener[S]) OnPartyJoin(context.Context, *EventScope, *S, string) error  { return nil }
func (BaseListener[S]) OnPartyLeave(context.Context, *EventScope, *S) error         { return nil }
func (BaseListener[S]) OnMatchEnd(context.Context, *EventScope, *S, *models.MatchEndData) error {
	return nil
}
func (BaseListener[S]) OnDestroyableDamage(context.Context, *EventScope, *S, *models.DestroyableGoal, int) error {
	return nil
}
func (BaseListener[S]) OnDestroyableDestroy(context.Context, *EventScope, *S, float64, int) error {
	return nil
}
func (BaseListener[S]) OnCoreLeak(context.Context, *EventScope, *S, float64, int) error {
	return nil
}
func (BaseListener[S]) OnControlPointCapture(context.Context, *EventScope, *S, int) error {
	return nil
}
func (BaseListener[S]) OnFlagPlace(context.Context, *EventScope, *S, int64) error { return nil }
func (BaseListener[S]) OnFlagPickup(context.Context, *EventScope, *S) error       { return nil }
func (BaseListener[S]) OnFlagDrop(context.Context, *EventScope, *S, int64) error  { return nil }
func (BaseListener[S]) OnFlagDefend(context.Context, *EventScope, *S) error       { return nil }
func (BaseListener[S]) OnWoolPlace(context.Context, *EventScope, *S, int64) error { return nil }
func (BaseListener[S]) OnWoolPickup(context.Context, *EventScope, *S) error       { return nil }
func (BaseListener[S]) OnWoolDrop(context.Context, *EventScope, *S) error         { return nil }
func (BaseListener[S]) OnWoolDefend(context.Context, *EventScope, *S) error       { return nil }
