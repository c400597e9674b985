package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/models"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/pricing"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/rates"
)

// Open creates a new database connection and performs auto-migration.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Quote{},
		&models.MarkupRule{},
		&models.Order{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}

// Store provides typed access to the persisted documents.
type Store struct {
	db *gorm.DB
}

// New wraps an open database connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ReplaceBundle writes a full rate bundle in a single transaction so the
// stored document is always complete. A bundle missing any instrument is
// rejected outright.
func (s *Store) ReplaceBundle(bundle rates.Bundle) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, inst := range rates.Instruments {
			quote, ok := bundle[inst.Key]
			if !ok {
				return fmt.Errorf("refusing to persist partial bundle: missing %q", inst.Key)
			}
			row := models.Quote{
				Key:    inst.Key,
				Buy:    quote.Buy,
				Sell:   quote.Sell,
				Change: quote.Change,
				Rate:   quote.Rate,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"buy", "sell", "change", "rate", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("failed to write quote %q: %w", inst.Key, err)
			}
		}
		return nil
	})
}

// LoadBundle reads the persisted rate bundle. An empty map means no
// bundle has been written yet.
func (s *Store) LoadBundle() (rates.Bundle, error) {
	var rows []models.Quote
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load rate bundle: %w", err)
	}

	bundle := make(rates.Bundle, len(rows))
	for _, row := range rows {
		bundle[row.Key] = rates.Quote{
			Buy:    row.Buy,
			Sell:   row.Sell,
			Change: row.Change,
			Rate:   row.Rate,
		}
	}
	return bundle, nil
}

// MergeMarkup upserts markup rules for the products present in cfg,
// leaving every other product's rules untouched.
func (s *Store) MergeMarkup(cfg pricing.Config) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for product, pc := range cfg {
			sides := map[string]pricing.SideConfig{
				pricing.SideBuy:  pc.Buy,
				pricing.SideSell: pc.Sell,
			}
			for side, sc := range sides {
				row := models.MarkupRule{
					Product:    product,
					Side:       side,
					Percentage: sc.Percentage,
					Extra:      sc.Extra,
					Manual:     sc.Manual,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "product"}, {Name: "side"}},
					DoUpdates: clause.AssignmentColumns([]string{"percentage", "extra", "manual", "updated_at"}),
				}).Create(&row).Error
				if err != nil {
					return fmt.Errorf("failed to write markup rule %s/%s: %w", product, side, err)
				}
			}
		}
		return nil
	})
}

// LoadMarkup reads the full markup configuration. Products with no
// stored rules are simply absent and price with an all-zero config.
func (s *Store) LoadMarkup() (pricing.Config, error) {
	var rows []models.MarkupRule
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load markup config: %w", err)
	}

	cfg := make(pricing.Config)
	for _, row := range rows {
		pc := cfg[row.Product]
		sc := pricing.SideConfig{
			Percentage: row.Percentage,
			Extra:      row.Extra,
			Manual:     row.Manual,
		}
		switch row.Side {
		case pricing.SideBuy:
			pc.Buy = sc
		case pricing.SideSell:
			pc.Sell = sc
		}
		cfg[row.Product] = pc
	}
	return cfg, nil
}
