package model

import "time"

// User — учётная запись. Password хранит bcrypt-хеш, никогда не исходный пароль.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
