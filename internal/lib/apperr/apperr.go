// Package apperr определяет сентинельные ошибки уровня приложения.
// Обработчики HTTP сопоставляют их со статус-кодами через errors.Is,
// неизвестные ошибки превращаются в 500 без утечки деталей клиенту.
package apperr

import "errors"

var (
	// ErrNotFound — запрошенный ресурс не существует.
	ErrNotFound = errors.New("not found")

	// ErrEmailNotAllowed — email не входит в список разрешённых для регистрации.
	ErrEmailNotAllowed = errors.New("email is not authorized to create an account")

	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden — пользователь аутентифицирован, но не владеет ресурсом.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized — личность пользователя не установлена.
	ErrUnauthorized = errors.New("unauthorized")
)
