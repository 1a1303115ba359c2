// Package textlist реализует семантику текстовых списков «одна строка — один элемент».
// Ингредиенты и шаги приготовления хранятся как свободный текст,
// при отображении текст разбивается по переводам строк, пустые строки отбрасываются.
package textlist

import "strings"

// Split разбивает текст на элементы списка по переводам строк.
// Пробельные строки отбрасываются, окружающие пробелы элементов обрезаются.
// Для пустого текста возвращает nil.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}
