// Package preference persists the one piece of genuinely durable state this
// module owns: a user's explicitly assigned language, keyed by
// (user_id, guild_id) (spec.md section 6, "Persisted state layout"). It is
// trimmed and adapted from the teacher's UserLanguagePreference gorm model
// and repository (internal/models/translation.go,
// internal/repository/translation_repository.go) down to the one table the
// spec calls for, dropping the teacher's tenant-scoped stats/cache/RTL
// columns that have no SPEC_FULL.md home.
package preference

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preference is the persisted row: one language assignment per user per
// guild. GuildID is empty for a DM-scoped, guild-independent preference.
type Preference struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_user_guild_pref"`
	GuildID   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_user_guild_pref"`
	Language  string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name the way the teacher's models do, instead of
// relying on gorm's pluralization of the Go type name.
func (Preference) TableName() string {
	return "language_preferences"
}

// BeforeCreate mirrors the teacher's UUID-assignment hook pattern.
func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Store is the gorm-backed repository for Preference rows.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an already-connected *gorm.DB.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate runs gorm's auto-migration for the preference table. Called once
// at composition-root startup, the way the teacher's main.go migrates its
// models.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Preference{})
}

// Get returns the stored language for (userID, guildID), or "" if the user
// has never set one (a clean "not found" is not an error here — the
// TargetResolver treats an empty UserPref the same as absent, spec.md 4.6).
func (s *Store) Get(ctx context.Context, userID, guildID string) (string, error) {
	var pref Preference
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pref.Language, nil
}

// Set upserts the (userID, guildID) → language assignment.
func (s *Store) Set(ctx context.Context, userID, guildID, language string) error {
	pref := Preference{UserID: userID, GuildID: guildID, Language: language}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Assign(Preference{Language: language}).
		FirstOrCreate(&pref).Error
}

// Delete removes a stored preference, reverting the user to role/guild
// default resolution.
func (s *Store) Delete(ctx context.Context, userID, guildID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Delete(&Preference{}).Error
}
