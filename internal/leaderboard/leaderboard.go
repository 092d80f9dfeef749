package leaderboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// Entry is one leaderboard row. Members are stored as "{id}/{name}" so a
// single ZRANGE returns everything a scoreboard render needs.
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

// Leaderboard is the sorted-set family for one metric, one key per period.
type Leaderboard struct {
	Score ScoreType

	rdb    *redis.Client
	logger *zap.SugaredLogger
}

func (l *Leaderboard) key(p Period, now time.Time) string {
	return "lb:" + string(l.Score) + ":" + p.ID(now)
}

// Increment bumps the member in every period window at once.
func (l *Leaderboard) Increment(ctx context.Context, member string, delta int64) {
	now := time.Now()
	for _, p := range AllPeriods {
		if err := l.rdb.ZIncrBy(ctx, l.key(p, now), float64(delta), member).Err(); err != nil {
			l.logger.Warnw("Leaderboard increment failed", "board", l.Score, "period", p, "error", err)
		}
	}
}

// Set overwrites the member's score in every period window.
func (l *Leaderboard) Set(ctx context.Context, member string, value int64) {
	now := time.Now()
	for _, p := range AllPeriods {
		if err := l.rdb.ZAdd(ctx, l.key(p, now), redis.Z{Score: float64(value), Member: member}).Err(); err != nil {
			l.logger.Warnw("Leaderboard set failed", "board", l.Score, "period", p, "error", err)
		}
	}
}

// SetIfHigher writes only when the new value beats the stored one, per
// period. Absent members count as zero.
func (l *Leaderboard) SetIfHigher(ctx context.Context, member string, value int64) {
	now := time.Now()
	for _, p := range AllPeriods {
		key := l.key(p, now)
		current, err := l.rdb.ZScore(ctx, key, member).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Warnw("Leaderboard score read failed", "board", l.Score, "period", p, "error", err)
			continue
		}
		if float64(value) > current {
			if err := l.rdb.ZAdd(ctx, key, redis.Z{Score: float64(value), Member: member}).Err(); err != nil {
				l.logger.Warnw("Leaderboard set failed", "board", l.Score, "period", p, "error", err)
			}
		}
	}
}

// FetchTop returns up to limit entries, highest score first. A limit
// below one yields nothing rather than the whole set.
func (l *Leaderboard) FetchTop(ctx context.Context, p Period, limit int) ([]Entry, error) {
	if limit < 1 {
		return []Entry{}, nil
	}
	rows, err := l.rdb.ZRevRangeWithScores(ctx, l.key(p, time.Now()), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		member, ok := row.Member.(string)
		if !ok {
			continue
		}
		id, name, found := strings.Cut(member, "/")
		if !found {
			name = id
		}
		entries = append(entries, Entry{ID: id, Name: name, Score: int64(row.Score)})
	}
	return entries, nil
}

// Position returns the zero-based rank, or -1 if the member is absent.
func (l *Leaderboard) Position(ctx context.Context, p Period, member string) (int64, error) {
	rank, err := l.rdb.ZRevRank(ctx, l.key(p, time.Now()), member).Result()
	if errors.Is(err, redis.Nil) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank, nil
}

// PopulateAllTime rebuilds the all-time window from lifetime player stats,
// highest first. Run at startup so boards survive a flushed Redis.
func (l *Leaderboard) PopulateAllTime(ctx context.Context, players []models.Player) {
	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ScoreOf(l.Score, &sorted[i].Stats) > ScoreOf(l.Score, &sorted[j].Stats)
	})

	key := l.key(PeriodAllTime, time.Now())
	for i := range sorted {
		score := ScoreOf(l.Score, &sorted[i].Stats)
		if err := l.rdb.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: sorted[i].IDName()}).Err(); err != nil {
			l.logger.Warnw("All-time populate failed", "board", l.Score, "error", err)
			return
		}
	}
}

// BoardSet is the full family of boards, one per metric.
type BoardSet struct {
	boards map[ScoreType]*Leaderboard
}

func NewBoardSet(rdb *redis.Client, logger *zap.SugaredLogger) *BoardSet {
	boards := make(map[ScoreType]*Leaderboard, len(AllScoreTypes))
	for _, st := range AllScoreTypes {
		boards[st] = &Leaderboard{Score: st, rdb: rdb, logger: logger}
	}
	return &BoardSet{boards: boards}
}

func (s *BoardSet) Board(st ScoreType) *Leaderboard {
	return s.boards[st]
}

// Increment bumps a member on one metric across all periods.
func (s *BoardSet) Increment(ctx context.Context, st ScoreType, member string, delta int64) {
	s.boards[st].Increment(ctx, member, delta)
}

// SetIfHigher raises a member's score on one metric where beaten.
func (s *BoardSet) SetIfHigher(ctx context.Context, st ScoreType, member string, value int64) {
	s.boards[st].SetIfHigher(ctx, member, value)
}

// PopulateAllTime rebuilds every board's all-time window.
func (s *BoardSet) PopulateAllTime(ctx context.Context, players []models.Player) {
	for _, st := range AllScoreTypes {
		s.boards[st].PopulateAllTime(ctx, players)
	}
}
