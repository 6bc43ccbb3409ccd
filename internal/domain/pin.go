package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PinnedThread is a per-user bookmark on a thread; at most one per (user, thread)
type PinnedThread struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_pinned_threads_user_id;uniqueIndex:uq_pinned_threads_user_thread" json:"user_id"`
	ThreadID uuid.UUID `gorm:"type:uuid;not null;index:idx_pinned_threads_thread_id;uniqueIndex:uq_pinned_threads_user_thread" json:"thread_id"`
	PinnedAt time.Time `gorm:"type:timestamp;not null;autoCreateTime" json:"pinned_at"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Thread   Thread    `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"thread,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *PinnedThread) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for PinnedThread
func (PinnedThread) TableName() string {
	return "pinned_threads"
}
