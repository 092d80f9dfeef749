package handlers

import (
	"context"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// MockStore implements Store with per-method overrides; unset methods
// return empty results.
type MockStore struct {
	PlayerByIDFunc                 func(ctx context.Context, id string) (*models.Player, error)
	PlayerByIDOrNameFunc           func(ctx context.Context, text string) (*models.Player, error)
	SavePlayerFunc                 func(ctx context.Context, player *models.Player) error
	EnsurePlayerNameUniquenessFunc func(ctx context.Context, name, keepID string) error
	PlayerPunishmentsFunc          func(ctx context.Context, player *models.Player) ([]models.Punishment, error)
	ActivePlayerPunishmentsFunc    func(ctx context.Context, player *models.Player) ([]models.Punishment, error)
	IPBansFunc                     func(ctx context.Context, ip string) ([]models.Punishment, error)
	AltsForPlayerFunc              func(ctx context.Context, player *models.Player) ([]models.Player, error)
	PlayersWithRankFunc            func(ctx context.Context, rankID string) ([]models.Player, error)
	PlayersWithTagFunc             func(ctx context.Context, tagID string) ([]models.Player, error)

	InsertSessionFunc      func(ctx context.Context, session *models.Session) error
	SaveSessionFunc        func(ctx context.Context, session *models.Session) error
	SessionForPlayerFunc   func(ctx context.Context, player *models.Player, sessionID string) (*models.Session, error)
	OpenServerSessionsFunc func(ctx context.Context, serverID string) ([]models.Session, error)

	InsertPunishmentFunc func(ctx context.Context, pun *models.Punishment) error
	PunishmentByIDFunc   func(ctx context.Context, id string) (*models.Punishment, error)
	SavePunishmentFunc   func(ctx context.Context, pun *models.Punishment) error

	AllRanksFunc     func(ctx context.Context) ([]models.Rank, error)
	RankByIDFunc     func(ctx context.Context, id string) (*models.Rank, error)
	RankByNameFunc   func(ctx context.Context, name string) (*models.Rank, error)
	SaveRankFunc     func(ctx context.Context, rank *models.Rank) error
	DeleteRankFunc   func(ctx context.Context, id string) error
	DefaultRanksFunc func(ctx context.Context) ([]models.Rank, error)

	AllTagsFunc   func(ctx context.Context) ([]models.Tag, error)
	TagByIDFunc   func(ctx context.Context, id string) (*models.Tag, error)
	TagByNameFunc func(ctx context.Context, name string) (*models.Tag, error)
	SaveTagFunc   func(ctx context.Context, tag *models.Tag) error
	DeleteTagFunc func(ctx context.Context, id string) error

	AllLevelsFunc       func(ctx context.Context) ([]models.Level, error)
	LevelByIDOrNameFunc func(ctx context.Context, text string) (*models.Level, error)
	LevelByNameFunc     func(ctx context.Context, name string) (*models.Level, error)
	SaveLevelFunc       func(ctx context.Context, level *models.Level) error
}

func (m *MockStore) PlayerByID(ctx context.Context, id string) (*models.Player, error) {
	if m.PlayerByIDFunc != nil {
		return m.PlayerByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) PlayerByIDOrName(ctx context.Context, text string) (*models.Player, error) {
	if m.PlayerByIDOrNameFunc != nil {
		return m.PlayerByIDOrNameFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockStore) SavePlayer(ctx context.Context, player *models.Player) error {
	if m.SavePlayerFunc != nil {
		return m.SavePlayerFunc(ctx, player)
	}
	return nil
}

func (m *MockStore) EnsurePlayerNameUniqueness(ctx context.Context, name, keepID string) error {
	if m.EnsurePlayerNameUniquenessFunc != nil {
		return m.EnsurePlayerNameUniquenessFunc(ctx, name, keepID)
	}
	return nil
}

func (m *MockStore) PlayerPunishments(ctx context.Context, player *models.Player) ([]models.Punishment, error) {
	if m.PlayerPunishmentsFunc != nil {
		return m.PlayerPunishmentsFunc(ctx, player)
	}
	return nil, nil
}

func (m *MockStore) ActivePlayerPunishments(ctx context.Context, player *models.Player) ([]models.Punishment, error) {
	if m.ActivePlayerPunishmentsFunc != nil {
		return m.ActivePlayerPunishmentsFunc(ctx, player)
	}
	return nil, nil
}

func (m *MockStore) IPBans(ctx context.Context, ip string) ([]models.Punishment, error) {
	if m.IPBansFunc != nil {
		return m.IPBansFunc(ctx, ip)
	}
	return nil, nil
}

func (m *MockStore) AltsForPlayer(ctx context.Context, player *models.Player) ([]models.Player, error) {
	if m.AltsForPlayerFunc != nil {
		return m.AltsForPlayerFunc(ctx, player)
	}
	return nil, nil
}

func (m *MockStore) PlayersWithRank(ctx context.Context, rankID string) ([]models.Player, error) {
	if m.PlayersWithRankFunc != nil {
		return m.PlayersWithRankFunc(ctx, rankID)
	}
	return nil, nil
}

func (m *MockStore) PlayersWithTag(ctx context.Context, tagID string) ([]models.Player, error) {
	if m.PlayersWithTagFunc != nil {
		return m.PlayersWithTagFunc(ctx, tagID)
	}
	return nil, nil
}

func (m *MockStore) InsertSession(ctx context.Context, session *models.Session) error {
	if m.InsertSessionFunc != nil {
		return m.InsertSessionFunc(ctx, session)
	}
	return nil
}

func (m *MockStore) SaveSession(ctx context.Context, session *models.Session) error {
	if m.SaveSessionFunc != nil {
		return m.SaveSessionFunc(ctx, session)
	}
	return nil
}

func (m *MockStore) SessionForPlayer(ctx context.Context, player *models.Player, sessionID string) (*models.Session, error) {
	if m.SessionForPlayerFunc != nil {
		return m.SessionForPlayerFunc(ctx, player, sessionID)
	}
	return nil, nil
}

func (m *MockStore) OpenServerSessions(ctx context.Context, serverID string) ([]models.Session, error) {
	if m.OpenServerSessionsFunc != nil {
		return m.OpenServerSessionsFunc(ctx, serverID)
	}
	return nil, nil
}

func (m *MockStore) InsertPunishment(ctx context.Context, pun *models.Punishment) error {
	if m.InsertPunishmentFunc != nil {
		return m.InsertPunishmentFunc(ctx, pun)
	}
	return nil
}

func (m *MockStore) PunishmentByID(ctx context.Context, id string) (*models.Punishment, error) {
	if m.PunishmentByIDFunc != nil {
		return m.PunishmentByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) SavePunishment(ctx context.Context, pun *models.Punishment) error {
	if m.SavePunishmentFunc != nil {
		return m.SavePunishmentFunc(ctx, pun)
	}
	return nil
}

func (m *MockStore) AllRanks(ctx context.Context) ([]models.Rank, error) {
	if m.AllRanksFunc != nil {
		return m.AllRanksFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) RankByID(ctx context.Context, id string) (*models.Rank, error) {
	if m.RankByIDFunc != nil {
		return m.RankByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) RankByName(ctx context.Context, name string) (*models.Rank, error) {
	if m.RankByNameFunc != nil {
		return m.RankByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockStore) SaveRank(ctx context.Context, rank *models.Rank) error {
	if m.SaveRankFunc != nil {
		return m.SaveRankFunc(ctx, rank)
	}
	return nil
}

func (m *MockStore) DeleteRank(ctx context.Context, id string) error {
	if m.DeleteRankFunc != nil {
		return m.DeleteRankFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) DefaultRanks(ctx context.Context) ([]models.Rank, error) {
	if m.DefaultRanksFunc != nil {
		return m.DefaultRanksFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) AllTags(ctx context.Context) ([]models.Tag, error) {
	if m.AllTagsFunc != nil {
		return m.AllTagsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) TagByID(ctx context.Context, id string) (*models.Tag, error) {
	if m.TagByIDFunc != nil {
		return m.TagByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStore) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	if m.TagByNameFunc != nil {
		return m.TagByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockStore) SaveTag(ctx context.Context, tag *models.Tag) error {
	if m.SaveTagFunc != nil {
		return m.SaveTagFunc(ctx, tag)
	}
	return nil
}

func (m *MockStore) DeleteTag(ctx context.Context, id string) error {
	if m.DeleteTagFunc != nil {
		return m.DeleteTagFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) AllLevels(ctx context.Context) ([]models.Level, error) {
	if m.AllLevelsFunc != nil {
		return m.AllLevelsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) LevelByIDOrName(ctx context.Context, text string) (*models.Level, error) {
	if m.LevelByIDOrNameFunc != nil {
		return m.LevelByIDOrNameFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockStore) LevelByName(ctx context.Context, name string) (*models.Level, error) {
	if m.LevelByNameFunc != nil {
		return m.LevelByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockStore) SaveLevel(ctx context.Context, level *models.Level) error {
	if m.SaveLevelFunc != nil {
		return m.SaveLevelFunc(ctx, level)
	}
	return nil
}

// MockPlayerCache is a map-backed PlayerCache that records persist flags.
type MockPlayerCache struct {
	GetFunc func(ctx context.Context, key string) (*models.Player, error)

	players  map[string]*models.Player
	persists []bool
}

func (m *MockPlayerCache) Get(ctx context.Context, key string) (*models.Player, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return m.players[key], nil
}

func (m *MockPlayerCache) Set(ctx context.Context, key string, player *models.Player, persist bool) error {
	if m.players == nil {
		m.players = map[string]*models.Player{}
	}
	m.players[key] = player
	m.persists = append(m.persists, persist)
	return nil
}

type MockMatchCache struct {
	matches map[string]*models.Match
}

func (m *MockMatchCache) Get(ctx context.Context, key string) (*models.Match, error) {
	return m.matches[key], nil
}

func (m *MockMatchCache) SetWithExpiry(ctx context.Context, key string, match *models.Match, persist bool, ttl time.Duration) error {
	if m.matches == nil {
		m.matches = map[string]*models.Match{}
	}
	m.matches[key] = match
	return nil
}

// MockNotifier records webhook sends.
type MockNotifier struct {
	reports      []string
	punishments  []*models.Punishment
	reversions   []*models.Punishment
	notesAdded   []*models.StaffNote
	notesDeleted []*models.StaffNote
}

func (m *MockNotifier) SendReport(target, reporter, reason, serverID string) {
	m.reports = append(m.reports, target)
}

func (m *MockNotifier) SendPunishment(pun *models.Punishment) {
	m.punishments = append(m.punishments, pun)
}

func (m *MockNotifier) SendPunishmentReverted(pun *models.Punishment) {
	m.reversions = append(m.reversions, pun)
}

func (m *MockNotifier) SendNoteAdded(player *models.Player, note *models.StaffNote) {
	m.notesAdded = append(m.notesAdded, note)
}

func (m *MockNotifier) SendNoteDeleted(player *models.Player, note *models.StaffNote) {
	m.notesDeleted = append(m.notesDeleted, note)
}
