package repo

import (
	"context"

	"PassVault/internal/model"

	"gorm.io/gorm"
)

// RecordRepository определяет контракт доступа к Record для слоя сервиса.
// Все операции работают строго внутри партиции владельца.
type RecordRepository interface {
	// Create сохраняет новую запись (ID и OwnerID уже назначены сервисом).
	Create(ctx context.Context, rec *model.Record) error

	// ListByOwner возвращает все записи владельца, новые сверху.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Record, error)

	// Delete удаляет запись владельца по id. Чужой или несуществующий id — gorm.ErrRecordNotFound.
	Delete(ctx context.Context, ownerID int64, id string) error
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepository создаёт реализацию репозитория для Record.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, rec *model.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Record, error) {
	var recs []model.Record
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recordRepo) Delete(ctx context.Context, ownerID int64, id string) error {
	// фильтр по owner_id — чтобы нельзя было удалить чужую запись, зная её id
	tx := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&model.Record{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
