package model

import "time"

// Record — одна запись хранилища пользователя.
// Секрет хранится в открытом виде: шифрование на клиенте не входит в контракт
// (см. README), сервер ограничивает доступ только партицией владельца.
type Record struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID int64  `gorm:"not null;index" json:"owner_id"` // ссылка на users.id, назначается при создании и неизменяема

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Name     string `json:"name"` // отображаемое имя, может быть пустым
	Username string `gorm:"not null" json:"username"`
	Secret   string `gorm:"not null" json:"secret"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
