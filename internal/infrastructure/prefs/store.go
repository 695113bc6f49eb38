package prefs

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultLanguage is used for users who never picked a language.
const DefaultLanguage = "en"

// userLanguage is the persistence model for a user's language choice.
type userLanguage struct {
	UserID int64  `gorm:"primaryKey"`
	Lang   string `gorm:"not null"`
}

func (userLanguage) TableName() string {
	return "users"
}

// Store persists per-user language preferences in SQLite.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the preferences database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open prefs db %s: %w", path, err)
	}

	if err := db.AutoMigrate(&userLanguage{}); err != nil {
		return nil, fmt.Errorf("migrate prefs db: %w", err)
	}
	return &Store{db: db}, nil
}

// Language returns the stored language for a user, or DefaultLanguage for
// unknown users. Lookup failures degrade to the default rather than
// blocking the conversation.
func (s *Store) Language(userID int64) string {
	var row userLanguage
	if err := s.db.First(&row, "user_id = ?", userID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("[Prefs] lookup user=%d: %v", userID, err)
		}
		return DefaultLanguage
	}
	return row.Lang
}

// SetLanguage upserts the language choice for a user.
func (s *Store) SetLanguage(userID int64, lang string) error {
	row := userLanguage{UserID: userID, Lang: lang}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lang"}),
	}).Create(&row).Error
}
