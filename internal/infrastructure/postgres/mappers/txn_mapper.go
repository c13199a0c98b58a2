package mappers

import (
	"github.com/CosmiCloud/othub-processor/internal/domain"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/postgres/models"
)

func ToDomainTxn(model *models.TxnHeaderModel) *domain.TxnRecord {
	approver := ""
	if model.Approver != nil {
		approver = *model.Approver
	}
	return &domain.TxnRecord{
		TxnID:       model.TxnID,
		Progress:    model.Progress,
		Approver:    approver,
		APIKey:      model.APIKey,
		Request:     model.Request,
		Network:     model.Network,
		AppName:     model.AppName,
		Description: model.Description,
		Data:        model.Data,
		UAL:         model.UAL,
		Keywords:    model.Keywords,
		State:       model.State,
		TxnHash:     model.TxnHash,
		TxnFee:      model.TxnFee,
		TracFee:     model.TracFee,
		Epochs:      model.Epochs,
		Receiver:    model.Receiver,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMTxn(record *domain.TxnRecord) *models.TxnHeaderModel {
	var approver *string
	if record.Approver != "" {
		value := record.Approver
		approver = &value
	}
	return &models.TxnHeaderModel{
		TxnID:       record.TxnID,
		Progress:    record.Progress,
		Approver:    approver,
		APIKey:      record.APIKey,
		Request:     record.Request,
		Network:     record.Network,
		AppName:     record.AppName,
		Description: record.Description,
		Data:        record.Data,
		UAL:         record.UAL,
		Keywords:    record.Keywords,
		State:       record.State,
		TxnHash:     record.TxnHash,
		TxnFee:      record.TxnFee,
		TracFee:     record.TracFee,
		Epochs:      record.Epochs,
		Receiver:    record.Receiver,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
