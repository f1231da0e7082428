package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/watchword/watchword/core/watcher"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	glogger "gorm.io/gorm/logger"
)

// SQLStore keeps keywords and monitored groups in a SQLite database.
type SQLStore struct {
	db *gorm.DB
}

func OpenSQL(ctx context.Context, path string) (*SQLStore, error) {
	logger := log.FromContext(ctx).WithPrefix("db")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := gorm.Open(GetDialect(path), &gorm.Config{
		Logger: glogger.New(logger, glogger.Config{
			Colorful:                  true,
			SlowThreshold:             time.Second * 5,
			LogLevel:                  glogger.Error,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&Keyword{}, &MonitoredGroup{}); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	logger.Debug("Database initialized", "path", path, "driver", Driver)
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) LoadKeywords(ctx context.Context) ([]string, error) {
	var words []string
	if err := s.db.WithContext(ctx).Model(&Keyword{}).Order("position").Pluck("word", &words).Error; err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	return words, nil
}

// SaveKeywords replaces the stored list with keywords, keeping their order.
func (s *SQLStore) SaveKeywords(ctx context.Context, keywords []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&Keyword{}).Error; err != nil {
			return fmt.Errorf("failed to clear keywords: %w", err)
		}
		if len(keywords) == 0 {
			return nil
		}
		rows := make([]Keyword, len(keywords))
		for i, w := range keywords {
			rows[i] = Keyword{Word: w, Position: i}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save keywords: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) AddGroup(ctx context.Context, chat watcher.Chat) error {
	row := MonitoredGroup{ChatID: chat.ID, Kind: chat.Kind.String(), Title: chat.Title}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "title", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to add group %d: %w", chat.ID, err)
	}
	return nil
}

func (s *SQLStore) LoadGroups(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.WithContext(ctx).Model(&MonitoredGroup{}).Order("id").Pluck("chat_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	return ids, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
