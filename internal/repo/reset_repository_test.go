package repo

import (
	"context"
	"testing"
	"time"

	"PassVault/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestResetTokenRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	r := NewResetTokenRepository(db)
	ctx := context.Background()

	u, err := users.CreateUser(ctx, &model.User{Email: "bob@example.com", Password: "hash"})
	assert.NoError(t, err)

	tok := &model.ResetToken{
		ID:        "jti-1",
		UserID:    u.ID,
		Email:     u.Email,
		ExpiresAt: time.Now().UTC().Add(30 * time.Minute),
	}
	assert.NoError(t, r.Create(ctx, tok))

	got, err := r.GetByID(ctx, "jti-1")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.False(t, got.Used)

	// первое использование — ок
	assert.NoError(t, r.MarkUsed(ctx, "jti-1"))

	got, err = r.GetByID(ctx, "jti-1")
	assert.NoError(t, err)
	assert.True(t, got.Used)

	// повторное использование — not found
	err = r.MarkUsed(ctx, "jti-1")
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	// несуществующий токен
	_, err = r.GetByID(ctx, "missing")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}
