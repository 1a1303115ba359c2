// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная, используется для входа)
	PasswordHash string    // Хэш пароля пользователя
	Name         *string   // Отображаемое имя, может отсутствовать
	CreatedAt    time.Time // Дата создания учётной записи
}

// DisplayName возвращает имя пользователя для отображения:
// Name, если оно задано, иначе email.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
