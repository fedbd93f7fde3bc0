package service

import (
	"context"
	"time"

	"PassVault/internal/model"
	"PassVault/internal/repo"
	"PassVault/internal/watch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VaultService инкапсулирует операции над записями хранилища.
// Каждая мутация будит подписки владельца через watch.Hub.
type VaultService struct {
	records repo.RecordRepository
	hub     *watch.Hub
	logger  *zap.SugaredLogger
}

func NewVaultService(records repo.RecordRepository, hub *watch.Hub, logger *zap.SugaredLogger) *VaultService {
	return &VaultService{records: records, hub: hub, logger: logger}
}

// Add создаёт запись: id и метка времени назначаются сервером.
func (s *VaultService) Add(ctx context.Context, ownerID int64, name, username, secret string) (*model.Record, error) {
	rec := &model.Record{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Username:  username,
		Secret:    secret,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.hub.Notify(ownerID)
	return rec, nil
}

// Delete удаляет запись владельца. Чужой id отбивается репозиторием.
func (s *VaultService) Delete(ctx context.Context, ownerID int64, id string) error {
	if err := s.records.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.hub.Notify(ownerID)
	return nil
}

// List возвращает снапшот партиции владельца, новые сверху.
func (s *VaultService) List(ctx context.Context, ownerID int64) ([]model.Record, error) {
	recs, err := s.records.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return recs, nil
}

// Watch подписывает на изменения партиции владельца.
func (s *VaultService) Watch(ownerID int64) (<-chan struct{}, func()) {
	return s.hub.Subscribe(ownerID)
}
