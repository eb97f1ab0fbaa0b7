// Package entity defines topics, published essays and their rankings.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Topic is an essay prompt created by an administrator.
type Topic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// BeforeCreate assigns a new UUID when none is set.
func (t *Topic) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Essay is a user's essay published under a topic.
type Essay struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TopicID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content string    `gorm:"type:text;not null"`

	// Score is the self-reported band score. Nil when the author did not supply one.
	Score *float64

	PublishedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a new UUID when none is set.
func (e *Essay) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TopicView is a topic together with its essays in both ranking orders.
type TopicView struct {
	Topic       Topic
	ScoreRanked []Essay
	TimeRanked  []Essay
}
