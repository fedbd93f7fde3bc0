package repo

import (
	"context"
	"time"

	"PassVault/internal/model"

	"gorm.io/gorm"
)

// ResetTokenRepository — контракт доступа к токенам восстановления пароля.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *model.ResetToken) error
	GetByID(ctx context.Context, id string) (*model.ResetToken, error)

	// MarkUsed помечает токен использованным. Уже использованный или
	// несуществующий токен — gorm.ErrRecordNotFound.
	MarkUsed(ctx context.Context, id string) error
}

type resetTokenRepo struct {
	db *gorm.DB
}

// NewResetTokenRepository создаёт реализацию репозитория для ResetToken.
func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepo{db: db}
}

func (r *resetTokenRepo) Create(ctx context.Context, token *model.ResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *resetTokenRepo) GetByID(ctx context.Context, id string) (*model.ResetToken, error) {
	var t model.ResetToken
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *resetTokenRepo) MarkUsed(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Model(&model.ResetToken{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]any{"used": true, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
