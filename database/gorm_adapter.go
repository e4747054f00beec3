package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	model "art-critique-service/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormDatabase relational profile store implementation.
// MySQL in production, SQLite for local runs and tests.
type GormDatabase struct {
	db      *gorm.DB
	locking bool // row locking supported by the dialect
}

// GormConfig gorm adapter configuration
type GormConfig struct {
	Dsn          string // MySQL DSN
	SqlitePath   string // SQLite file path, ":memory:" allowed
	MaxOpenConns int
	MaxIdleConns int
}

// NewGormDatabase create a gorm-backed profile store
func NewGormDatabase(dbType DBType, config interface{}) (Database, error) {
	cfg, ok := config.(*GormConfig)
	if !ok {
		return nil, fmt.Errorf("invalid gorm config type")
	}

	var (
		dialector gorm.Dialector
		locking   bool
	)

	switch dbType {
	case DBTypeMySQL:
		dialector = mysql.Open(cfg.Dsn)
		locking = true
	case DBTypeSQLite:
		if cfg.SqlitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SqlitePath), 0777); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SqlitePath)
	default:
		return nil, ErrUnsupportedDBType
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open profile database: %w", err)
	}

	if dbType == DBTypeMySQL {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Profile{}); err != nil {
		return nil, fmt.Errorf("failed to migrate profile schema: %w", err)
	}

	log.Printf("Profile database ready: type=%s", dbType)

	return &GormDatabase{db: db, locking: locking}, nil
}

// GetProfile get profile by principal
func (g *GormDatabase) GetProfile(principal string) (*model.Profile, error) {
	var profile model.Profile
	err := g.db.First(&profile, "principal = ?", principal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetOrCreateProfile get profile by principal, creating an empty row on
// first read (lazy create)
func (g *GormDatabase) GetOrCreateProfile(principal string) (*model.Profile, error) {
	profile, err := g.GetProfile(principal)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	fresh := &model.Profile{
		Principal:     principal,
		LikedArtworks: []string{},
		PurchasedNfts: []string{},
	}
	// A concurrent first read may have created the row already
	if err := g.db.Clauses(clause.OnConflict{DoNothing: true}).Create(fresh).Error; err != nil {
		return nil, err
	}
	return g.GetProfile(principal)
}

// UpsertProfile create or update profile by principal
func (g *GormDatabase) UpsertProfile(profile *model.Profile) error {
	if profile.LikedArtworks == nil {
		profile.LikedArtworks = []string{}
	}
	if profile.PurchasedNfts == nil {
		profile.PurchasedNfts = []string{}
	}
	return g.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "bio", "liked_artworks", "purchased_nfts",
			"artwork_count", "critique_count", "upvote_count", "rank", "updated_at",
		}),
	}).Create(profile).Error
}

// AddLikedArtwork append the artwork id to the liked list. Idempotent: a
// duplicate add is a no-op, so the stored JSON array keeps set semantics.
func (g *GormDatabase) AddLikedArtwork(principal, artworkID string) error {
	return g.mutateLists(principal, func(p *model.Profile) bool {
		if p.HasLiked(artworkID) {
			return false
		}
		p.LikedArtworks = append(p.LikedArtworks, artworkID)
		return true
	})
}

// RemoveLikedArtwork remove the artwork id from the liked list. Removing an
// absent id is a no-op.
func (g *GormDatabase) RemoveLikedArtwork(principal, artworkID string) error {
	return g.mutateLists(principal, func(p *model.Profile) bool {
		kept := p.LikedArtworks[:0]
		removed := false
		for _, id := range p.LikedArtworks {
			if id == artworkID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		p.LikedArtworks = kept
		return removed
	})
}

// AddPurchasedNft append the NFT id to the purchased list. Idempotent.
func (g *GormDatabase) AddPurchasedNft(principal, nftID string) error {
	return g.mutateLists(principal, func(p *model.Profile) bool {
		if p.HasPurchased(nftID) {
			return false
		}
		p.PurchasedNfts = append(p.PurchasedNfts, nftID)
		return true
	})
}

// mutateLists run a read-modify-write of the profile row in one transaction.
// mutate returns false when nothing changed and the write is skipped.
func (g *GormDatabase) mutateLists(principal string, mutate func(*model.Profile) bool) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		query := tx
		if g.locking {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var profile model.Profile
		err := query.First(&profile, "principal = ?", principal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Lazy create, same as first profile read
				profile = model.Profile{
					Principal:     principal,
					LikedArtworks: []string{},
					PurchasedNfts: []string{},
				}
				if err := tx.Create(&profile).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}

		if !mutate(&profile) {
			return nil
		}

		return tx.Save(&profile).Error
	})
}

// Close close the underlying connection
func (g *GormDatabase) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
