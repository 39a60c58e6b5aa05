package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/pkg/database"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

// MaxComparisonPlayers bounds a saved comparison set.
const MaxComparisonPlayers = 4

// StatPatch replaces a card's raw counters.
type StatPatch struct {
	Apps    int `json:"apps"`
	Goal    int `json:"goal"`
	Assists int `json:"assists"`
}

func (p StatPatch) Validate() error {
	if p.Apps < 0 || p.Goal < 0 || p.Assists < 0 {
		return fmt.Errorf("apps, goal and assists must be non-negative: %w", utils.ErrInvalidInput)
	}
	return nil
}

// ImportRow is one user-supplied card. Ids are assigned on import.
type ImportRow struct {
	Name     string `json:"name" binding:"required"`
	Team     string `json:"team"`
	Position string `json:"position" binding:"required"`
	CardType string `json:"cardType"`
	Age      int    `json:"age"`
	Apps     int    `json:"apps"`
	Goal     int    `json:"goal"`
	Assists  int    `json:"assists"`
}

func (r ImportRow) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Position) == "" {
		return fmt.Errorf("name and position are required: %w", utils.ErrInvalidInput)
	}
	if r.Age < 0 {
		return fmt.Errorf("age must be non-negative: %w", utils.ErrInvalidInput)
	}
	return StatPatch{Apps: r.Apps, Goal: r.Goal, Assists: r.Assists}.Validate()
}

// PlayerStore persists cards and the override table. It is the only reader
// of overrides: every card it returns has them merged and derived metrics
// recomputed.
type PlayerStore struct {
	db     *database.DB
	cache  *CacheService
	hub    *WebSocketHub
	logger *logrus.Entry
}

func NewPlayerStore(db *database.DB, cache *CacheService, hub *WebSocketHub) *PlayerStore {
	return &PlayerStore{
		db:     db,
		cache:  cache,
		hub:    hub,
		logger: logrus.WithField("component", "player_store"),
	}
}

func (s *PlayerStore) overrides(ctx context.Context, ids ...uint) (map[uint]models.StatOverride, error) {
	q := s.db.WithContext(ctx)
	if len(ids) > 0 {
		q = q.Where("player_id IN ?", ids)
	}
	var rows []models.StatOverride
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load stat overrides: %w", err)
	}
	out := make(map[uint]models.StatOverride, len(rows))
	for _, o := range rows {
		out[o.PlayerID] = o
	}
	return out, nil
}

func (s *PlayerStore) merge(ctx context.Context, cards []models.PlayerCard) error {
	ids := make([]uint, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	byID, err := s.overrides(ctx, ids...)
	if err != nil {
		return err
	}
	for i := range cards {
		if o, ok := byID[cards[i].ID]; ok {
			o.Apply(&cards[i])
		}
	}
	models.RecomputeAll(cards)
	return nil
}

// Snapshot returns every card ordered by id.
func (s *PlayerStore) Snapshot(ctx context.Context) ([]models.PlayerCard, error) {
	var cards []models.PlayerCard
	if err := s.db.WithContext(ctx).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to load player cards: %w", err)
	}
	byID, err := s.overrides(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if o, ok := byID[cards[i].ID]; ok {
			o.Apply(&cards[i])
		}
	}
	models.RecomputeAll(cards)
	return cards, nil
}

func (s *PlayerStore) Get(ctx context.Context, id uint) (models.PlayerCard, error) {
	var card models.PlayerCard
	if err := s.db.WithContext(ctx).First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PlayerCard{}, fmt.Errorf("player %d: %w", id, utils.ErrNotFound)
		}
		return models.PlayerCard{}, fmt.Errorf("failed to load player %d: %w", id, err)
	}
	cards := []models.PlayerCard{card}
	if err := s.merge(ctx, cards); err != nil {
		return models.PlayerCard{}, err
	}
	return cards[0], nil
}

// FindByName returns all cards of a player, matched case-insensitively.
func (s *PlayerStore) FindByName(ctx context.Context, name string) ([]models.PlayerCard, error) {
	var cards []models.PlayerCard
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find player %q: %w", name, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("player %q: %w", name, utils.ErrNotFound)
	}
	if err := s.merge(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *PlayerStore) CareerSummary(ctx context.Context, name string) (analytics.CareerSummary, error) {
	cards, err := s.FindByName(ctx, name)
	if err != nil {
		return analytics.CareerSummary{}, err
	}
	return analytics.Career(cards), nil
}

// UpdatePlayer upserts an override and returns the merged card. Repeating
// the same patch leaves the card unchanged.
func (s *PlayerStore) UpdatePlayer(ctx context.Context, id uint, patch StatPatch) (models.PlayerCard, error) {
	if err := patch.Validate(); err != nil {
		return models.PlayerCard{}, err
	}
	card, err := s.Get(ctx, id)
	if err != nil {
		return models.PlayerCard{}, err
	}

	override := models.StatOverride{
		PlayerID: id,
		Apps:     patch.Apps,
		Goal:     patch.Goal,
		Assists:  patch.Assists,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"apps", "goal", "assists", "updated_at"}),
	}).Create(&override).Error
	if err != nil {
		return models.PlayerCard{}, fmt.Errorf("failed to save stat override: %w", err)
	}

	override.Apply(&card)
	s.changed(ctx, EventPlayerUpdated, card)
	s.logger.WithFields(logrus.Fields{"player_id": id, "apps": patch.Apps, "goal": patch.Goal, "assists": patch.Assists}).Info("Stat override saved")
	return card, nil
}

// ResetOverride drops a card's override and returns the base card.
func (s *PlayerStore) ResetOverride(ctx context.Context, id uint) (models.PlayerCard, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.PlayerCard{}, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.StatOverride{}, id).Error; err != nil {
		return models.PlayerCard{}, fmt.Errorf("failed to delete stat override: %w", err)
	}
	card, err := s.Get(ctx, id)
	if err != nil {
		return models.PlayerCard{}, err
	}
	s.changed(ctx, EventOverrideReset, card)
	return card, nil
}

// Import appends rows with ids continuing after the current maximum.
func (s *PlayerStore) Import(ctx context.Context, rows []ImportRow) ([]models.PlayerCard, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to import: %w", utils.ErrInvalidInput)
	}
	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	var cards []models.PlayerCard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := maxID(tx)
		if err != nil {
			return err
		}
		cards = make([]models.PlayerCard, len(rows))
		for i, r := range rows {
			next++
			cards[i] = models.NewPlayerCard(next, strings.TrimSpace(r.Name), r.Team, strings.ToUpper(r.Position), r.CardType, r.Age, r.Apps, r.Goal, r.Assists)
			cards[i].Source = "import"
		}
		return tx.CreateInBatches(&cards, 100).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import players: %w", err)
	}

	models.RecomputeAll(cards)
	s.changed(ctx, EventPlayersImported, cards)
	s.logger.WithField("count", len(cards)).Info("Players imported")
	return cards, nil
}

// AddPlayer stores a single manual card. A card with the same name, team
// and card type is a conflict.
func (s *PlayerStore) AddPlayer(ctx context.Context, row ImportRow) (models.PlayerCard, error) {
	var dupes int64
	err := s.db.WithContext(ctx).Model(&models.PlayerCard{}).
		Where("LOWER(name) = ? AND team = ? AND card_type = ?", strings.ToLower(strings.TrimSpace(row.Name)), row.Team, row.CardType).
		Count(&dupes).Error
	if err != nil {
		return models.PlayerCard{}, fmt.Errorf("failed to check for duplicate card: %w", err)
	}
	if dupes > 0 {
		return models.PlayerCard{}, fmt.Errorf("card %q (%s, %s) already exists: %w", row.Name, row.Team, row.CardType, utils.ErrConflict)
	}

	cards, err := s.Import(ctx, []ImportRow{row})
	if err != nil {
		return models.PlayerCard{}, err
	}
	card := cards[0]
	if err := s.db.WithContext(ctx).Model(&card).Update("source", "manual").Error; err != nil {
		return models.PlayerCard{}, fmt.Errorf("failed to tag manual player: %w", err)
	}
	card.Source = "manual"
	return card, nil
}

func maxID(tx *gorm.DB) (uint, error) {
	var highest uint
	if err := tx.Model(&models.PlayerCard{}).Select("COALESCE(MAX(id), 0)").Scan(&highest).Error; err != nil {
		return 0, fmt.Errorf("failed to read max player id: %w", err)
	}
	return highest, nil
}

// Seed loads cards into an empty table and reports how many were written.
func (s *PlayerStore) Seed(ctx context.Context, cards []models.PlayerCard) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PlayerCard{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count player cards: %w", err)
	}
	if count > 0 {
		s.logger.WithField("existing", count).Debug("Player table already seeded")
		return 0, nil
	}
	if len(cards) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&cards, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to seed player cards: %w", err)
	}
	s.logger.WithField("count", len(cards)).Info("Player cards seeded")
	return len(cards), nil
}

// SaveComparison stores between two and MaxComparisonPlayers distinct cards.
func (s *PlayerStore) SaveComparison(ctx context.Context, name string, ids []uint) (*models.ComparisonSet, []models.PlayerCard, error) {
	if len(ids) < 2 || len(ids) > MaxComparisonPlayers {
		return nil, nil, fmt.Errorf("a comparison needs 2 to %d players: %w", MaxComparisonPlayers, utils.ErrInvalidInput)
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, nil, fmt.Errorf("player %d listed twice: %w", id, utils.ErrInvalidInput)
		}
		seen[id] = true
	}

	cards, err := s.cardsByID(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode player ids: %w", err)
	}
	set := &models.ComparisonSet{
		ID:        uuid.New().String(),
		Name:      name,
		PlayerIDs: datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(set).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to save comparison: %w", err)
	}
	return set, cards, nil
}

func (s *PlayerStore) GetComparison(ctx context.Context, id string) (*models.ComparisonSet, []models.PlayerCard, error) {
	var set models.ComparisonSet
	if err := s.db.WithContext(ctx).First(&set, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("comparison %s: %w", id, utils.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load comparison: %w", err)
	}
	var ids []uint
	if err := json.Unmarshal(set.PlayerIDs, &ids); err != nil {
		return nil, nil, fmt.Errorf("failed to decode comparison players: %w", err)
	}
	cards, err := s.cardsByID(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return &set, cards, nil
}

// cardsByID loads cards in the order given, failing on the first unknown id.
func (s *PlayerStore) cardsByID(ctx context.Context, ids []uint) ([]models.PlayerCard, error) {
	var found []models.PlayerCard
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	byID := make(map[uint]models.PlayerCard, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	cards := make([]models.PlayerCard, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("player %d: %w", id, utils.ErrNotFound)
		}
		cards = append(cards, c)
	}
	if err := s.merge(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *PlayerStore) LogChat(ctx context.Context, entry *models.ChatLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to log chat: %w", err)
	}
	return nil
}

// changed invalidates cached snapshots and notifies websocket subscribers.
func (s *PlayerStore) changed(ctx context.Context, event string, payload interface{}) {
	s.cache.Invalidate(ctx)
	if err := s.hub.Broadcast(TopicPlayers, event, payload); err != nil {
		s.logger.WithError(err).Warn("Failed to broadcast player change")
	}
}
