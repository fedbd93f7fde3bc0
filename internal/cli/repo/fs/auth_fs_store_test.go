package fs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthFSStore_SaveLoadClear(t *testing.T) {
	s := AuthFSStore{Path: filepath.Join(t.TempDir(), "auth_token")}

	// нет файла — ошибка
	_, err := s.Load()
	assert.Error(t, err)

	assert.NoError(t, s.Save("tok-123\n"))

	// завершающий перевод строки обрезается
	got, err := s.Load()
	assert.NoError(t, err)
	assert.Equal(t, "tok-123", got)

	assert.NoError(t, s.Clear())
	_, err = s.Load()
	assert.Error(t, err)

	// повторный Clear безопасен
	assert.NoError(t, s.Clear())
}
