package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a postgres-backed Store and migrates the schema
func NewPGStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(
		&schema.Crown{},
		&schema.CrownBlock{},
		&schema.CommunityCrownSettings{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &pgStore{db: db}, nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

func (s *pgStore) GetCommunitySettings(ctx context.Context, communityID uint64) (*schema.CommunityCrownSettings, error) {
	var settings schema.CommunityCrownSettings
	err := s.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schema.DefaultSettings(communityID), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *pgStore) UpsertCommunitySettings(ctx context.Context, settings *schema.CommunityCrownSettings) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "community_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"minimum_play_count",
				"activity_threshold_days",
				"crowns_enabled",
				"blocked_role_ids",
				"allowed_role_ids",
				"updated_at",
			}),
		}).
		Create(settings).Error
}

func (s *pgStore) ListCrownBlocks(ctx context.Context, communityID uint64) ([]schema.CrownBlock, error) {
	var blocks []schema.CrownBlock
	if err := s.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *pgStore) AddCrownBlock(ctx context.Context, communityID, memberID uint64) error {
	block := schema.CrownBlock{
		CommunityID: communityID,
		MemberID:    memberID,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&block).Error
}

func (s *pgStore) RemoveCrownBlock(ctx context.Context, communityID, memberID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("community_id = ? AND member_id = ?", communityID, memberID).
		Delete(&schema.CrownBlock{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) GetActiveCrown(ctx context.Context, communityID uint64, artistKey domain.ArtistKey) (*schema.Crown, error) {
	var crown schema.Crown
	err := s.db.WithContext(ctx).
		Where("community_id = ? AND artist_key = ? AND active = ?", communityID, artistKey.String(), true).
		First(&crown).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &crown, nil
}

// ApplyEvaluation decides one artist's crown inside a single transaction.
// The active row is locked FOR UPDATE so concurrent evaluations of the same
// artist serialize; the create path has no row to lock, so a race there
// surfaces as a unique-index violation and is reported as ErrWriteConflict.
func (s *pgStore) ApplyEvaluation(ctx context.Context, input ApplyEvaluationInput) (*schema.Crown, domain.EvaluationAction, error) {
	var (
		crown  *schema.Crown
		action = domain.ActionNone
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current schema.Crown
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("community_id = ? AND artist_key = ? AND active = ?",
				input.CommunityID, input.ArtistKey.String(), true).
			First(&current).Error
		hasCurrent := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock active crown: %w", err)
		}

		if len(input.Eligible) == 0 {
			if !hasCurrent {
				return nil
			}
			if err := tx.Model(&current).Updates(map[string]interface{}{
				"active":         false,
				"transferred_at": input.Now,
				"updated_at":     input.Now,
			}).Error; err != nil {
				return fmt.Errorf("failed to retire crown: %w", err)
			}
			crown = &current
			action = domain.ActionRetired
			return nil
		}

		top := input.Eligible[0]

		if !hasCurrent {
			created := schema.Crown{
				CommunityID: input.CommunityID,
				ArtistKey:   input.ArtistKey.String(),
				OwnerID:     top.MemberID,
				PlayCount:   top.PlayCount,
				CapturedAt:  input.Now,
				Seeded:      input.ForceSeeded,
				Active:      true,
			}
			if err := tx.Create(&created).Error; err != nil {
				if isUniqueViolation(err) {
					return domain.ErrWriteConflict
				}
				return fmt.Errorf("failed to create crown: %w", err)
			}
			crown = &created
			action = domain.ActionCreated
			return nil
		}

		holderCount, holderEligible := playCountOf(input.Eligible, current.OwnerID)

		// The holder keeps the crown while still eligible and not strictly
		// beaten; ties never move the crown. Refresh the snapshot so display
		// reflects the latest count.
		if holderEligible && top.PlayCount <= holderCount {
			if holderCount != current.PlayCount {
				if err := tx.Model(&current).Updates(map[string]interface{}{
					"play_count": holderCount,
					"updated_at": input.Now,
				}).Error; err != nil {
					return fmt.Errorf("failed to refresh crown: %w", err)
				}
				current.PlayCount = holderCount
			}
			crown = &current
			return nil
		}

		// Transfer: the holder is no longer eligible, or a challenger is
		// strictly ahead. Transfers are organic; the successor row is never
		// seeded.
		if err := tx.Model(&current).Updates(map[string]interface{}{
			"active":         false,
			"transferred_at": input.Now,
			"updated_at":     input.Now,
		}).Error; err != nil {
			return fmt.Errorf("failed to retire crown: %w", err)
		}

		successor := schema.Crown{
			CommunityID: input.CommunityID,
			ArtistKey:   input.ArtistKey.String(),
			OwnerID:     top.MemberID,
			PlayCount:   top.PlayCount,
			CapturedAt:  input.Now,
			Seeded:      false,
			Active:      true,
		}
		if err := tx.Create(&successor).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrWriteConflict
			}
			return fmt.Errorf("failed to create successor crown: %w", err)
		}
		crown = &successor
		action = domain.ActionTransferred
		return nil
	})
	if err != nil {
		return nil, domain.ActionNone, err
	}

	return crown, action, nil
}

func (s *pgStore) DeleteArtistCrowns(ctx context.Context, communityID uint64, artistKey domain.ArtistKey) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("community_id = ? AND artist_key = ?", communityID, artistKey.String()).
		Delete(&schema.Crown{})
	return result.RowsAffected, result.Error
}

func (s *pgStore) DeleteCommunityCrowns(ctx context.Context, communityID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Delete(&schema.Crown{})
	return result.RowsAffected, result.Error
}

func (s *pgStore) DeleteSeededCrowns(ctx context.Context, communityID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("community_id = ? AND seeded = ?", communityID, true).
		Delete(&schema.Crown{})
	return result.RowsAffected, result.Error
}

func (s *pgStore) DeleteMemberCrowns(ctx context.Context, communityID, memberID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("community_id = ? AND owner_id = ?", communityID, memberID).
		Delete(&schema.Crown{})
	return result.RowsAffected, result.Error
}

func (s *pgStore) CountCommunityCrowns(ctx context.Context, communityID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Crown{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func (s *pgStore) CountSeededCrowns(ctx context.Context, communityID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Crown{}).
		Where("community_id = ? AND seeded = ?", communityID, true).
		Count(&count).Error
	return count, err
}

func (s *pgStore) ListActiveCrowns(ctx context.Context, communityID uint64, order CrownOrder, limit int, offset uint64) ([]schema.Crown, uint64, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Crown{}).
		Where("community_id = ? AND active = ?", communityID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := "play_count DESC, owner_id ASC"
	if order == OrderByCapturedAt {
		orderClause = "captured_at DESC, id DESC"
	}

	var crowns []schema.Crown
	if err := query.
		Order(orderClause).
		Limit(limit).
		Offset(int(offset)).
		Find(&crowns).Error; err != nil {
		return nil, 0, err
	}

	return crowns, uint64(total), nil
}

// stolenCrownRow joins a retired crown to the successor active holder
type stolenCrownRow struct {
	schema.Crown
	TakenBy          *uint64 `gorm:"column:taken_by"`
	TakenByPlayCount *int    `gorm:"column:taken_by_play_count"`
}

func (s *pgStore) ListStolenCrowns(ctx context.Context, communityID uint64, limit int, offset uint64) ([]StolenCrown, uint64, error) {
	base := s.db.WithContext(ctx).
		Model(&schema.Crown{}).
		Where("crowns.community_id = ? AND crowns.active = ? AND crowns.transferred_at IS NOT NULL",
			communityID, false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []stolenCrownRow
	if err := base.
		Select("crowns.*, successor.owner_id AS taken_by, successor.play_count AS taken_by_play_count").
		Joins("LEFT JOIN crowns AS successor ON successor.community_id = crowns.community_id"+
			" AND successor.artist_key = crowns.artist_key AND successor.active = TRUE").
		Order("crowns.transferred_at DESC, crowns.id DESC").
		Limit(limit).
		Offset(int(offset)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	stolen := make([]StolenCrown, 0, len(rows))
	for _, r := range rows {
		stolen = append(stolen, StolenCrown{
			Crown:            r.Crown,
			TakenBy:          r.TakenBy,
			TakenByPlayCount: r.TakenByPlayCount,
		})
	}

	return stolen, uint64(total), nil
}

func playCountOf(eligible []domain.MemberPlayCount, memberID uint64) (int, bool) {
	for _, m := range eligible {
		if m.MemberID == memberID {
			return m.PlayCount, true
		}
	}
	return 0, false
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
