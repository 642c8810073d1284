package domain

import "strings"

// ConnectionInfo описывает подключение к одной таблице, собранное из конфига
type ConnectionInfo struct {
	JdbcURL  string
	Username string
	Password string
	// Table может быть пустой, пока имя таблицы не определено
	Table string
}

// HasTable проверяет, что имя таблицы определено
func (c ConnectionInfo) HasTable() bool {
	return strings.TrimSpace(c.Table) != ""
}

// String не выводит пароль, чтобы информацию можно было писать в лог
func (c ConnectionInfo) String() string {
	var b strings.Builder
	b.WriteString(c.JdbcURL)
	if c.Username != "" {
		b.WriteString(" user=")
		b.WriteString(c.Username)
	}
	if c.Table != "" {
		b.WriteString(" table=")
		b.WriteString(c.Table)
	}
	return b.String()
}
