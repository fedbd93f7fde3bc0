// Package vault — состояние страницы хранилища: живой список записей,
// флаги раскрытия секретов и маскирование.
package vault

import (
	"sort"
	"strings"

	"PassVault/internal/cli/api"
)

// maskRune — символ-заполнитель маскированного секрета.
const maskRune = "•"

// View — состояние списка записей. Владеет им исключительно страница
// хранилища; каждый снапшот подписки замещает список целиком.
type View struct {
	records  []api.Record
	revealed map[string]bool
}

// NewView создаёт пустое состояние.
func NewView() *View {
	return &View{revealed: make(map[string]bool)}
}

// ApplySnapshot целиком замещает список очередным снапшотом подписки
// и пересортировывает его: контракт хранилища — снапшоты, не диффы.
func (v *View) ApplySnapshot(recs []api.Record) {
	v.records = make([]api.Record, len(recs))
	copy(v.records, recs)
	SortRecords(v.records)
}

// Records возвращает отсортированный список.
func (v *View) Records() []api.Record {
	return v.records
}

// SortRecords сортирует по убыванию created_at. Запись без метки времени
// (только что отправлена, сервер ещё не назначил) считается самой старой
// и уходит в конец.
func SortRecords(recs []api.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

// ToggleReveal переключает раскрытие секрета записи. Чисто локальное
// состояние UI, по умолчанию всё замаскировано.
func (v *View) ToggleReveal(id string) {
	v.revealed[id] = !v.revealed[id]
}

// Revealed сообщает, раскрыт ли секрет записи.
func (v *View) Revealed(id string) bool {
	return v.revealed[id]
}

// Mask возвращает маску секрета: clamp(длина, 8, 16) символов-заполнителей,
// от содержимого секрета зависит только длина.
func Mask(secret string) string {
	n := len([]rune(secret))
	if n < 8 {
		n = 8
	}
	if n > 16 {
		n = 16
	}
	return strings.Repeat(maskRune, n)
}

// DisplaySecret — секрет записи в том виде, в котором его рендерит список.
func (v *View) DisplaySecret(rec api.Record) string {
	if v.revealed[rec.ID] {
		return rec.Secret
	}
	return Mask(rec.Secret)
}
