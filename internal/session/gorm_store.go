package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jobportal/web/internal/models"
)

// sessionRecord is the table layout for the durable store. The user
// record is kept as a JSON snapshot since it is only a cache of what
// the backend confirmed.
type sessionRecord struct {
	ID        string `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UserJSON  []byte
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string { return "web_sessions" }

// GormStore persists sessions in Postgres so logins survive a
// frontend restart.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Find(ctx context.Context, id string) (*Session, error) {
	var rec sessionRecord
	err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		return nil, ErrNotFound
	}

	s := &Session{
		ID:        rec.ID,
		Token:     rec.Token,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}
	if len(rec.UserJSON) > 0 {
		var u models.User
		if err := json.Unmarshal(rec.UserJSON, &u); err == nil {
			s.User = &u
		}
	}
	return s, nil
}

func (g *GormStore) Save(ctx context.Context, s *Session) error {
	rec := sessionRecord{
		ID:        s.ID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
	if s.User != nil {
		buf, err := json.Marshal(s.User)
		if err != nil {
			return err
		}
		rec.UserJSON = buf
	}
	return g.db.WithContext(ctx).Save(&rec).Error
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id).Error
}

// PurgeExpired removes sessions past their TTL. Called periodically
// from main.
func (g *GormStore) PurgeExpired(ctx context.Context) error {
	return g.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&sessionRecord{}).Error
}
