package repository

import (
	"errors"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/postgres/mappers"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTxnRepository struct {
	DB *gorm.DB
}

func NewDefaultTxnRepository(db *gorm.DB) *DefaultTxnRepository {
	return &DefaultTxnRepository{DB: db}
}

func (r *DefaultTxnRepository) MarkProcessing(txnID, approver string) error {
	return r.DB.Model(&models.TxnHeaderModel{}).
		Where("txn_id = ?", txnID).
		Updates(map[string]interface{}{
			"progress": domain.ProgressProcessing,
			"approver": approver,
		}).Error
}

func (r *DefaultTxnRepository) MarkCreated(txnID, ual, state string) error {
	return r.DB.Model(&models.TxnHeaderModel{}).
		Where("txn_id = ?", txnID).
		Updates(map[string]interface{}{
			"progress": domain.ProgressCreated,
			"ual":      ual,
			"state":    state,
		}).Error
}

func (r *DefaultTxnRepository) MarkComplete(txnID string) error {
	return r.DB.Model(&models.TxnHeaderModel{}).
		Where("txn_id = ?", txnID).
		Update("progress", domain.ProgressComplete).Error
}

// Abandon targets whatever row the wallet is currently driving, not a txn id.
// The approver + request + PROCESSING triple is expected to match one row.
func (r *DefaultTxnRepository) Abandon(approver string) error {
	return r.DB.Model(&models.TxnHeaderModel{}).
		Where("approver = ? AND request = ? AND progress = ?",
			approver, domain.RequestCreateAndTransfer, domain.ProgressProcessing).
		Updates(map[string]interface{}{
			"progress": domain.ProgressAbandoned,
			"txn_data": domain.AbandonedData,
		}).Error
}

func (r *DefaultTxnRepository) Requeue(approver string) error {
	return r.DB.Model(&models.TxnHeaderModel{}).
		Where("approver = ? AND request = ? AND progress = ?",
			approver, domain.RequestCreateAndTransfer, domain.ProgressProcessing).
		Updates(map[string]interface{}{
			"progress": domain.ProgressPending,
			"approver": nil,
		}).Error
}

func (r *DefaultTxnRepository) InsertShadow(record *domain.TxnRecord) error {
	return r.DB.Create(mappers.ToGORMTxn(record)).Error
}

func (r *DefaultTxnRepository) AnnotateShadow(ual, description string) error {
	return r.DB.Model(&models.TxnHeaderModel{}).
		Where("progress = ? AND ual = ? AND request = ?",
			domain.ProgressTransferFailed, ual, domain.RequestCreateAndTransfer).
		Updates(map[string]interface{}{
			"txn_description": description,
			"updated_at":      time.Now(),
		}).Error
}

func (r *DefaultTxnRepository) GetByID(txnID string) (*domain.TxnRecord, error) {
	var model models.TxnHeaderModel
	if err := r.DB.First(&model, "txn_id = ?", txnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTxnNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTxn(&model), nil
}

func (r *DefaultTxnRepository) FindPending(limit int) ([]*domain.TxnRecord, error) {
	var txnModels []models.TxnHeaderModel
	if err := r.DB.
		Where("progress = ? AND approver IS NULL", domain.ProgressPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&txnModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.TxnRecord, len(txnModels))
	for i := range txnModels {
		records[i] = mappers.ToDomainTxn(&txnModels[i])
	}
	return records, nil
}
