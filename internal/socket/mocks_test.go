package socket

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
)

type mockPlayerStore struct {
	players  map[string]*models.Player
	persists []bool
}

func (m *mockPlayerStore) Get(ctx context.Context, key string) (*models.Player, error) {
	return m.players[key], nil
}

func (m *mockPlayerStore) Set(ctx context.Context, key string, player *models.Player, persist bool) error {
	if m.players == nil {
		m.players = map[string]*models.Player{}
	}
	m.players[key] = player
	m.persists = append(m.persists, persist)
	return nil
}

type mockMatchStore struct {
	matches    map[string]*models.Match
	expirySets int
}

func (m *mockMatchStore) Get(ctx context.Context, key string) (*models.Match, error) {
	return m.matches[key], nil
}

func (m *mockMatchStore) Set(ctx context.Context, key string, match *models.Match, persist bool) error {
	if m.matches == nil {
		m.matches = map[string]*models.Match{}
	}
	m.matches[key] = match
	return nil
}

func (m *mockMatchStore) SetWithExpiry(ctx context.Context, key string, match *models.Match, persist bool, ttl time.Duration) error {
	m.expirySets++
	return m.Set(ctx, key, match, persist)
}

type mockLevelStore struct {
	levels map[string]*models.Level
}

func (m *mockLevelStore) Get(ctx context.Context, key string) (*models.Level, error) {
	return m.levels[key], nil
}

type mockPersister struct {
	savedPlayers []string
	savedLevels  []string
}

func (m *mockPersister) SavePlayer(ctx context.Context, player *models.Player) error {
	m.savedPlayers = append(m.savedPlayers, player.ID)
	return nil
}

func (m *mockPersister) SaveLevel(ctx context.Context, level *models.Level) error {
	m.savedLevels = append(m.savedLevels, level.ID)
	return nil
}

type mockKV struct {
	values map[string]string
}

func (m *mockKV) GetString(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKV) SetString(ctx context.Context, key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

type boardOp struct {
	Score  leaderboard.ScoreType
	Member string
	Value  int64
}

type mockBoards struct {
	increments []boardOp
	highs      []boardOp
}

func (m *mockBoards) Increment(ctx context.Context, st leaderboard.ScoreType, member string, delta int64) {
	m.increments = append(m.increments, boardOp{st, member, delta})
}

func (m *mockBoards) SetIfHigher(ctx context.Context, st leaderboard.ScoreType, member string, value int64) {
	m.highs = append(m.highs, boardOp{st, member, value})
}

func (m *mockBoards) incrementsOf(st leaderboard.ScoreType) int64 {
	var total int64
	for _, op := range m.increments {
		if op.Score == st {
			total += op.Value
		}
	}
	return total
}

type mockDeathSink struct {
	deaths []*models.Death
	reject bool
}

func (m *mockDeathSink) EnqueueDeath(death *models.Death) bool {
	if m.reject {
		return false
	}
	m.deaths = append(m.deaths, death)
	return true
}

type emittedEvent struct {
	Event models.EventType
	Data  any
}

type mockEmitter struct {
	events []emittedEvent
}

func (m *mockEmitter) Emit(event models.EventType, data any) error {
	m.events = append(m.events, emittedEvent{event, data})
	return nil
}

func (m *mockEmitter) countOf(event models.EventType) int {
	count := 0
	for _, e := range m.events {
		if e.Event == event {
			count++
		}
	}
	return count
}

// testHarness bundles the mocked services around one router.
type testHarness struct {
	router  *Router
	server  *ServerContext
	svc     *Services
	players *mockPlayerStore
	matches *mockMatchStore
	levels  *mockLevelStore
	db      *mockPersister
	kv      *mockKV
	boards  *mockBoards
	deaths  *mockDeathSink
	emitter *mockEmitter
}

func newTestHarness(serverID string) *testHarness {
	h := &testHarness{
		players: &mockPlayerStore{players: map[string]*models.Player{}},
		matches: &mockMatchStore{matches: map[string]*models.Match{}},
		levels:  &mockLevelStore{levels: map[string]*models.Level{}},
		db:      &mockPersister{},
		kv:      &mockKV{values: map[string]string{}},
		boards:  &mockBoards{},
		deaths:  &mockDeathSink{},
		emitter: &mockEmitter{},
	}
	h.svc = &Services{
		Players: h.players,
		Matches: h.matches,
		Levels:  h.levels,
		DB:      h.db,
		KV:      h.kv,
		Boards:  h.boards,
		Deaths:  h.deaths,
		Logger:  zap.NewNop().Sugar(),
	}
	h.server = NewServerContext(serverID, h.emitter, h.svc)
	h.router = NewRouter(h.server, h.svc)
	return h
}

// seedMatch installs a match as the server's current one.
func (h *testHarness) seedMatch(match *models.Match) {
	h.matches.matches[match.ID] = match
	h.kv.values["server:"+h.server.ID+":current_match_id"] = match.ID
}
