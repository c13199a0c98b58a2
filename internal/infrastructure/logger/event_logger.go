package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// TxnAttemptEvent is a durable audit row per processing attempt, so final
// dispositions survive log rotation.
type TxnAttemptEvent struct {
	ID          uint `gorm:"primaryKey"`
	TxnID       string
	Wallet      string
	PublicKey   string
	Network     string
	Disposition string
	ErrorName   string
	UAL         string
	Timestamp   time.Time
}

type TxnEventLogger interface {
	LogAttempt(ctx context.Context, event TxnAttemptEvent) error
}

type PGTxnEventLogger struct {
	db *gorm.DB
}

func NewPGTxnEventLogger(db *gorm.DB) *PGTxnEventLogger {
	return &PGTxnEventLogger{db: db}
}

func (l *PGTxnEventLogger) LogAttempt(ctx context.Context, event TxnAttemptEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
