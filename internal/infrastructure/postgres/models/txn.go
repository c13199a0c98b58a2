package models

import (
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
)

// TxnHeaderModel mirrors the shared txn_header ledger table. Approver is a
// pointer: requeue must write SQL NULL, not an empty string.
type TxnHeaderModel struct {
	TxnID       string             `gorm:"column:txn_id;primaryKey;type:uuid"`
	Progress    domain.Progress    `gorm:"column:progress;index:idx_progress"`
	Approver    *string            `gorm:"column:approver;index:idx_approver"`
	APIKey      string             `gorm:"column:api_key"`
	Request     domain.RequestType `gorm:"column:request"`
	Network     string             `gorm:"column:network"`
	AppName     string             `gorm:"column:app_name"`
	Description string             `gorm:"column:txn_description"`
	Data        string             `gorm:"column:txn_data"`
	UAL         string             `gorm:"column:ual;index:idx_ual"`
	Keywords    string             `gorm:"column:keywords"`
	State       string             `gorm:"column:state"`
	TxnHash     string             `gorm:"column:txn_hash"`
	TxnFee      float64            `gorm:"column:txn_fee"`
	TracFee     float64            `gorm:"column:trac_fee"`
	Epochs      int                `gorm:"column:epochs"`
	Receiver    string             `gorm:"column:receiver"`
	CreatedAt   time.Time          `gorm:"column:created_at"`
	UpdatedAt   time.Time          `gorm:"column:updated_at"`
}

func (TxnHeaderModel) TableName() string {
	return "txn_header"
}
