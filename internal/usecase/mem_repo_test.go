package usecase

import (
	"sort"
	"sync"

	"github.com/CosmiCloud/othub-processor/internal/domain"
)

// memTxnRepo mimics the txn_header statements in memory, including their
// filter scoping, so the state machine can be asserted end to end.
type memTxnRepo struct {
	mu      sync.Mutex
	records map[string]*domain.TxnRecord

	markProcessingCalls int

	abandonErr  error
	requeueErr  error
	insertErr   error
	annotateErr error
}

func newMemTxnRepo(records ...*domain.TxnRecord) *memTxnRepo {
	repo := &memTxnRepo{records: make(map[string]*domain.TxnRecord)}
	for _, record := range records {
		copied := *record
		repo.records[record.TxnID] = &copied
	}
	return repo
}

func (r *memTxnRepo) MarkProcessing(txnID, approver string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markProcessingCalls++
	if record, ok := r.records[txnID]; ok {
		record.Progress = domain.ProgressProcessing
		record.Approver = approver
	}
	return nil
}

func (r *memTxnRepo) MarkCreated(txnID, ual, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[txnID]; ok {
		record.Progress = domain.ProgressCreated
		record.UAL = ual
		record.State = state
	}
	return nil
}

func (r *memTxnRepo) MarkComplete(txnID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[txnID]; ok {
		record.Progress = domain.ProgressComplete
	}
	return nil
}

func (r *memTxnRepo) Abandon(approver string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.abandonErr != nil {
		return r.abandonErr
	}
	for _, record := range r.records {
		if record.Approver == approver &&
			record.Request == domain.RequestCreateAndTransfer &&
			record.Progress == domain.ProgressProcessing {
			record.Progress = domain.ProgressAbandoned
			record.Data = domain.AbandonedData
		}
	}
	return nil
}

func (r *memTxnRepo) Requeue(approver string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.requeueErr != nil {
		return r.requeueErr
	}
	for _, record := range r.records {
		if record.Approver == approver &&
			record.Request == domain.RequestCreateAndTransfer &&
			record.Progress == domain.ProgressProcessing {
			record.Progress = domain.ProgressPending
			record.Approver = ""
		}
	}
	return nil
}

func (r *memTxnRepo) InsertShadow(record *domain.TxnRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	copied := *record
	r.records[record.TxnID] = &copied
	return nil
}

func (r *memTxnRepo) AnnotateShadow(ual, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.annotateErr != nil {
		return r.annotateErr
	}
	for _, record := range r.records {
		if record.Progress == domain.ProgressTransferFailed &&
			record.UAL == ual &&
			record.Request == domain.RequestCreateAndTransfer {
			record.Description = description
		}
	}
	return nil
}

func (r *memTxnRepo) GetByID(txnID string) (*domain.TxnRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[txnID]
	if !ok {
		return nil, domain.ErrTxnNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memTxnRepo) FindPending(limit int) ([]*domain.TxnRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*domain.TxnRecord
	for _, record := range r.records {
		if record.Progress == domain.ProgressPending && record.Approver == "" {
			copied := *record
			pending = append(pending, &copied)
		}
	}
	// oldest first, as the SQL query orders
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// shadowFor returns the shadow row carrying the given ual, excluding the
// original record.
func (r *memTxnRepo) shadowFor(ual, originalTxnID string) *domain.TxnRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.TxnID != originalTxnID && record.UAL == ual {
			copied := *record
			return &copied
		}
	}
	return nil
}
