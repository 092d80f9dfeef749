package socket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// ErrInvalidMatchState signals an event arrived for a match phase that
// cannot accept it; the router answers with FORCE_MATCH_END so the game
// server resynchronizes instead of wedging.
var ErrInvalidMatchState = errors.New("invalid match state")

// endedMatchRetention keeps finished matches readable by the HTTP API for
// an hour after their persistent save.
const endedMatchRetention = time.Hour

// Router dispatches decoded events through the listener chains. Listener
// order is fixed: raw counters first, then bookkeeping that reads them.
type Router struct {
	server *ServerContext
	svc    *Services

	participantListeners []Listener[models.Participant]
	playerListeners      []Listener[models.Player]
}

func NewRouter(server *ServerContext, svc *Services) *Router {
	return &Router{
		server: server,
		svc:    svc,
		participantListeners: []Listener[models.Participant]{
			ParticipantStatListener{},
			ParticipantPartyListener{},
			MapRecordListener{},
			LeaderboardListener{},
		},
		playerListeners: []Listener[models.Player]{
			PlayerStatListener{},
			PlayerGamemodeStatListener{},
			PlayerXPListener{},
			PlayerRecordListener{},
		},
	}
}

// Route handles one inbound packet. Payload decode errors propagate and
// kill the connection; state errors force-end the match and are absorbed.
func (r *Router) Route(ctx context.Context, event models.EventType, raw json.RawMessage) error {
	err := r.route(ctx, event, raw)
	if errors.Is(err, ErrInvalidMatchState) {
		r.forceMatchEnd(ctx, event)
		return nil
	}
	return err
}

func (r *Router) route(ctx context.Context, event models.EventType, raw json.RawMessage) error {
	switch event {
	case models.EventMatchLoad:
		return dispatch(r, ctx, raw, r.onMatchLoad)
	case models.EventMatchStart:
		return dispatch(r, ctx, raw, r.onMatchStart)
	case models.EventMatchEnd:
		return dispatch(r, ctx, raw, r.onMatchEnd)
	case models.EventPlayerDeath:
		return dispatch(r, ctx, raw, r.onPlayerDeath)
	case models.EventPlayerChat:
		return dispatch(r, ctx, raw, r.onPlayerChat)
	case models.EventKillstreak:
		return dispatch(r, ctx, raw, r.onKillstreak)
	case models.EventPartyJoin:
		return dispatch(r, ctx, raw, r.onPartyJoin)
	case models.EventPartyLeave:
		return dispatch(r, ctx, raw, r.onPartyLeave)
	case models.EventDestroyableDamage:
		return dispatch(r, ctx, raw, r.onDestroyableDamage)
	case models.EventDestroyableDestroy:
		return dispatch(r, ctx, raw, r.onDestroyableDestroy)
	case models.EventCoreLeak:
		return dispatch(r, ctx, raw, r.onCoreLeak)
	case models.EventFlagCapture:
		return dispatch(r, ctx, raw, r.onFlagCapture)
	case models.EventFlagPickup:
		return dispatch(r, ctx, raw, r.onFlagPickup)
	case models.EventFlagDrop:
		return dispatch(r, ctx, raw, r.onFlagDrop)
	case models.EventFlagDefend:
		return dispatch(r, ctx, raw, r.onFlagDefend)
	case models.EventWoolCapture:
		return dispatch(r, ctx, raw, r.onWoolCapture)
	case models.EventWoolPickup:
		return dispatch(r, ctx, raw, r.onWoolPickup)
	case models.EventWoolDrop:
		return dispatch(r, ctx, raw, r.onWoolDrop)
	case models.EventWoolDefend:
		return dispatch(r, ctx, raw, r.onWoolDefend)
	case models.EventControlPointCapture:
		return dispatch(r, ctx, raw, r.onControlPointCapture)
	default:
		r.svc.Logger.Warnw("Dropping unroutable event", "serverId", r.server.ID, "event", event)
		return nil
	}
}

// dispatch decodes the payload and invokes the typed handler.
func dispatch[T any](r *Router, ctx context.Context, raw json.RawMessage, handler func(context.Context, *T) error) error {
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	return handler(ctx, &data)
}

// matchInPhase loads the server's current match, optionally requiring a
// phase. No match at all is also a state error.
func (r *Router) matchInPhase(ctx context.Context, phases ...models.MatchState) (*models.Match, error) {
	match, err := r.server.Match(ctx)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrInvalidMatchState
	}
	if len(phases) == 0 {
		return match, nil
	}
	state := match.State()
	for _, phase := range phases {
		if state == phase {
			return match, nil
		}
	}
	return nil, ErrInvalidMatchState
}

func (r *Router) forceMatchEnd(ctx context.Context, event models.EventType) {
	matchID := "null"
	if match, err := r.server.Match(ctx); err == nil && match != nil {
		matchID = match.ID
	}
	r.svc.Logger.Warnw("Forcing match end after out-of-phase event",
		"serverId", r.server.ID, "matchId", matchID, "event", event)
	r.server.Call(ctx, models.EventForceMatchEnd, models.ForceMatchEndData{})
}

func (r *Router) saveMatch(ctx context.Context, match *models.Match) error {
	return r.svc.Matches.Set(ctx, match.ID, match, false)
}

// runParticipant pushes one hook invocation through the participant chain
// and writes the mutated participant back into the match.
func (r *Router) runParticipant(ctx context.Context, scope *EventScope, p *models.Participant, visit func(Listener[models.Participant]) error) error {
	for _, l := range r.participantListeners {
		if err := visit(l); err != nil {
			return err
		}
	}
	scope.Match.SaveParticipant(*p)
	return nil
}

// runPlayer loads the lifetime profile, pushes the hook through the player
// chain and refreshes the cache entry. Unknown players are skipped; the
// server can emit events for players who never completed login.
func (r *Router) runPlayer(ctx context.Context, scope *EventScope, name string, persist bool, visit func(Listener[models.Player], *models.Player) error) error {
	player, err := r.svc.Players.Get(ctx, name)
	if err != nil {
		return err
	}
	if player == nil {
		r.svc.Logger.Warnw("Skipping player chain for unknown player", "serverId", r.server.ID, "player", name)
		return nil
	}
	for _, l := range r.playerListeners {
		if err := visit(l, player); err != nil {
			return err
		}
	}
	return r.svc.Players.Set(ctx, player.Name, player, persist)
}

func (r *Router) onMatchLoad(ctx context.Context, data *models.MatchLoadData) error {
	level, err := r.svc.Levels.Get(ctx, data.MapID)
	if err != nil {
		return err
	}
	if level == nil {
		return ErrInvalidMatchState
	}

	matchID := uuid.New().String()
	level.Goals = data.Goals
	level.LastMatchID = &matchID

	parties := make(map[string]models.Party, len(data.Parties))
	for _, party := range data.Parties {
		parties[party.Name] = party
	}

	match := &models.Match{
		ID:           matchID,
		LoadedAt:     time.Now().UnixMilli(),
		Level:        *level,
		Parties:      parties,
		Participants: map[string]models.Participant{},
		ServerID:     r.server.ID,
	}

	if err := r.svc.DB.SaveLevel(ctx, level); err != nil {
		return err
	}
	if err := r.svc.Matches.Set(ctx, match.ID, match, true); err != nil {
		return err
	}
	return r.server.SetCurrentMatchID(ctx, match.ID)
}

func (r *Router) onMatchStart(ctx context.Context, data *models.MatchStartData) error {
	match, err := r.matchInPhase(ctx, models.MatchStatePre)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	match.StartedAt = &now
	for _, sp := range data.Participants {
		match.SaveParticipant(models.NewParticipant(sp, now))
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onMatchEnd(ctx context.Context, data *models.MatchEndData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	match.EndedAt = &now
	scope := &EventScope{Server: r.server, Match: match}

	for _, id := range participantIDs(match) {
		p := match.Participants[id]
		if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
			return l.OnMatchEnd(ctx, scope, &p, data)
		}); err != nil {
			return err
		}
	}

	for _, id := range participantIDs(match) {
		p := match.Participants[id]
		scope.Participant = &p
		if err := r.runPlayer(ctx, scope, p.Name, true, func(l Listener[models.Player], player *models.Player) error {
			return l.OnMatchEnd(ctx, scope, player, data)
		}); err != nil {
			return err
		}
	}
	scope.Participant = nil

	if err := r.svc.DB.SaveLevel(ctx, &match.Level); err != nil {
		return err
	}
	return r.svc.Matches.SetWithExpiry(ctx, match.ID, match, true, endedMatchRetention)
}

func (r *Router) onPlayerDeath(ctx context.Context, data *models.PlayerDeathData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	firstBlood := match.FirstBlood == nil && data.IsMurder()

	if data.IsMurder() {
		if attacker, ok := match.Participant(data.Attacker.ID); ok {
			if err := r.runParticipant(ctx, scope, &attacker, func(l Listener[models.Participant]) error {
				return l.OnKill(ctx, scope, &attacker, data, firstBlood)
			}); err != nil {
				return err
			}
			if err := r.runPlayer(ctx, scope, attacker.Name, false, func(l Listener[models.Player], player *models.Player) error {
				return l.OnKill(ctx, scope, player, data, firstBlood)
			}); err != nil {
				return err
			}
		}
	}

	if victim, ok := match.Participant(data.Victim.ID); ok {
		if err := r.runParticipant(ctx, scope, &victim, func(l Listener[models.Participant]) error {
			return l.OnDeath(ctx, scope, &victim, data, firstBlood)
		}); err != nil {
			return err
		}
		if err := r.runPlayer(ctx, scope, victim.Name, false, func(l Listener[models.Player], player *models.Player) error {
			return l.OnDeath(ctx, scope, player, data, firstBlood)
		}); err != nil {
			return err
		}
	}

	if firstBlood {
		match.FirstBlood = &models.FirstBlood{
			Attacker: *data.Attacker,
			Victim:   data.Victim,
			Date:     time.Now().UnixMilli(),
		}
	}

	r.recordDeath(match, data)
	return r.saveMatch(ctx, match)
}

// recordDeath hands the durable death document to the async inserter.
func (r *Router) recordDeath(match *models.Match, data *models.PlayerDeathData) {
	death := &models.Death{
		ID:        uuid.New().String(),
		Victim:    data.Victim,
		Attacker:  data.Attacker,
		Weapon:    data.Weapon,
		Entity:    data.Entity,
		Distance:  data.Distance,
		Key:       data.Key,
		Cause:     data.Cause,
		ServerID:  r.server.ID,
		MatchID:   match.ID,
		CreatedAt: time.Now().UnixMilli(),
	}
	if !r.svc.Deaths.EnqueueDeath(death) {
		r.svc.Logger.Warnw("Death insert queue rejected document", "matchId", match.ID, "victim", data.Victim.ID)
	}
}

func (r *Router) onPlayerChat(ctx context.Context, data *models.PlayerChatData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	if p, ok := match.Participant(data.Player.ID); ok {
		if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
			return l.OnChat(ctx, scope, &p, data)
		}); err != nil {
			return err
		}
	}
	if err := r.runPlayer(ctx, scope, data.Player.Name, false, func(l Listener[models.Player], player *models.Player) error {
		return l.OnChat(ctx, scope, player, data)
	}); err != nil {
		return err
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onKillstreak(ctx context.Context, data *models.KillstreakData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	if p, ok := match.Participant(data.Player.ID); ok {
		if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
			if data.Ended {
				return l.OnKillstreakEnd(ctx, scope, &p, data.Amount)
			}
			return l.OnKillstreak(ctx, scope, &p, data.Amount)
		}); err != nil {
			return err
		}
	}
	if err := r.runPlayer(ctx, scope, data.Player.Name, false, func(l Listener[models.Player], player *models.Player) error {
		if data.Ended {
			return l.OnKillstreakEnd(ctx, scope, player, data.Amount)
		}
		return l.OnKillstreak(ctx, scope, player, data.Amount)
	}); err != nil {
		return err
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onPartyJoin(ctx context.Context, data *models.PartyJoinData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	p, ok := match.Participant(data.Player.ID)
	if !ok {
		p = models.NewParticipant(data.Player, time.Now().UnixMilli())
	}
	if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
		return l.OnPartyJoin(ctx, scope, &p, data.PartyName)
	}); err != nil {
		return err
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onPartyLeave(ctx context.Context, data *models.PartyLeaveData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	if p, ok := match.Participant(data.Player.ID); ok {
		if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
			return l.OnPartyLeave(ctx, scope, &p)
		}); err != nil {
			return err
		}
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onDestroyableDamage(ctx context.Context, data *models.DestroyableDamageData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	destroyable := findDestroyable(match, data.DestroyableID)
	if destroyable == nil {
		return nil
	}
	scope := &EventScope{Server: r.server, Match: match}

	if p, ok := match.Participant(data.PlayerID); ok {
		if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
			return l.OnDestroyableDamage(ctx, scope, &p, destroyable, data.Damage)
		}); err != nil {
			return err
		}
		if err := r.runPlayer(ctx, scope, p.Name, false, func(l Listener[models.Player], player *models.Player) error {
			return l.OnDestroyableDamage(ctx, scope, player, destroyable, data.Damage)
		}); err != nil {
			return err
		}
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onDestroyableDestroy(ctx context.Context, data *models.DestroyableDestroyData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	for _, contribution := range data.Contributions {
		if p, ok := match.Participant(contribution.PlayerID); ok {
			if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
				return l.OnDestroyableDestroy(ctx, scope, &p, contribution.Percentage, contribution.BlockCount)
			}); err != nil {
				return err
			}
			if err := r.runPlayer(ctx, scope, p.Name, false, func(l Listener[models.Player], player *models.Player) error {
				return l.OnDestroyableDestroy(ctx, scope, player, contribution.Percentage, contribution.BlockCount)
			}); err != nil {
				return err
			}
		}
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onCoreLeak(ctx context.Context, data *models.CoreLeakData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	for _, contribution := range data.Contributions {
		if p, ok := match.Participant(contribution.PlayerID); ok {
			if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
				return l.OnCoreLeak(ctx, scope, &p, contribution.Percentage, contribution.BlockCount)
			}); err != nil {
				return err
			}
			if err := r.runPlayer(ctx, scope, p.Name, false, func(l Listener[models.Player], player *models.Player) error {
				return l.OnCoreLeak(ctx, scope, player, contribution.Percentage, contribution.BlockCount)
			}); err != nil {
				return err
			}
		}
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onControlPointCapture(ctx context.Context, data *models.ControlPointCaptureData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	scope := &EventScope{Server: r.server, Match: match}

	contributors := len(data.PlayerIDs)
	for _, playerID := range data.PlayerIDs {
		if p, ok := match.Participant(playerID); ok {
			if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
				return l.OnControlPointCapture(ctx, scope, &p, contributors)
			}); err != nil {
				return err
			}
			if err := r.runPlayer(ctx, scope, p.Name, false, func(l Listener[models.Player], player *models.Player) error {
				return l.OnControlPointCapture(ctx, scope, player, contributors)
			}); err != nil {
				return err
			}
		}
	}
	return r.saveMatch(ctx, match)
}

func (r *Router) onFlagCapture(ctx context.Context, data *models.FlagEventData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnFlagPlace(ctx, scope, p, data.HeldTime)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnFlagPlace(ctx, scope, player, data.HeldTime)
		})
}

func (r *Router) onFlagPickup(ctx context.Context, data *models.FlagEventData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnFlagPickup(ctx, scope, p)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnFlagPickup(ctx, scope, player)
		})
}

func (r *Router) onFlagDrop(ctx context.Context, data *models.FlagDropData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnFlagDrop(ctx, scope, p, data.HeldTime)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnFlagDrop(ctx, scope, player, data.HeldTime)
		})
}

func (r *Router) onFlagDefend(ctx context.Context, data *models.FlagEventData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnFlagDefend(ctx, scope, p)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnFlagDefend(ctx, scope, player)
		})
}

func (r *Router) onWoolCapture(ctx context.Context, data *models.WoolEventData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnWoolPlace(ctx, scope, p, data.HeldTime)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnWoolPlace(ctx, scope, player, data.HeldTime)
		})
}

func (r *Router) onWoolPickup(ctx context.Context, data *models.WoolEventData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnWoolPickup(ctx, scope, p)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnWoolPickup(ctx, scope, player)
		})
}

func (r *Router) onWoolDrop(ctx context.Context, data *models.WoolDropData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnWoolDrop(ctx, scope, p)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnWoolDrop(ctx, scope, player)
		})
}

func (r *Router) onWoolDefend(ctx context.Context, data *models.WoolEventData) error {
	match, err := r.matchInPhase(ctx, models.MatchStateInProgress)
	if err != nil {
		return err
	}
	return r.objectiveEvent(ctx, match, data.Player.ID,
		func(l Listener[models.Participant], scope *EventScope, p *models.Participant) error {
			return l.OnWoolDefend(ctx, scope, p)
		},
		func(l Listener[models.Player], scope *EventScope, player *models.Player) error {
			return l.OnWoolDefend(ctx, scope, player)
		})
}

// objectiveEvent runs both chains for a single acting player and saves the
// match afterwards.
func (r *Router) objectiveEvent(ctx context.Context, match *models.Match, playerID string,
	participantHook func(Listener[models.Participant], *EventScope, *models.Participant) error,
	playerHook func(Listener[models.Player], *EventScope, *models.Player) error) error {

	scope := &EventScope{Server: r.server, Match: match}
	if p, ok := match.Participant(playerID); ok {
		if err := r.runParticipant(ctx, scope, &p, func(l Listener[models.Participant]) error {
			return participantHook(l, scope, &p)
		}); err != nil {
			return err
		}
		if err := r.runPlayer(ctx, scope, p.Name, false, func(l Listener[models.Player], player *models.Player) error {
			return playerHook(l, scope, player)
		}); err != nil {
			return err
		}
	}
	return r.saveMatch(ctx, match)
}

func findDestroyable(match *models.Match, id string) *models.DestroyableGoal {
	if match.Level.Goals == nil {
		return nil
	}
	for i := range match.Level.Goals.Destroyables {
		if match.Level.Goals.Destroyables[i].ID == id {
			return &match.Level.Goals.Destroyables[i]
		}
	}
	return nil
}

// participantIDs snapshots map keys so listener mutations don't disturb
// iteration order mid-loop.
func participantIDs(match *models.Match) []string {
	ids := make([]string, 0, len(match.Participants))
	for id := range match.Participants {
		ids = append(ids, id)
	}
	return ids
}
