// Package ddl извлекает имя таблицы из CREATE TABLE / SELECT и переписывает
// CREATE TABLE под другую таблицу.
//
// Разбор текстовый, на регулярных выражениях, а не полноценный парсер DDL.
// Поэтому важны соглашения MySQL о том, как выглядит SHOW CREATE TABLE:
// имя таблицы сразу после CREATE TABLE, в обратных кавычках.
package ddl

import (
	"errors"
	"regexp"
	"strings"
)

// ErrTableNotFound - в тексте DDL нет CREATE TABLE <имя>
var ErrTableNotFound = errors.New("table name not found in DDL")

var (
	createTablePattern = regexp.MustCompile("(?i)\\s*create\\s+table\\s+(`?\\w+`?)\\s+")
	fromPattern        = regexp.MustCompile("(?i)from\\s+(`?\\w+`?)")
)

// Rewriter превращает DDL исходной таблицы в DDL целевой
type Rewriter interface {
	Rewrite(ddl, table string) (string, error)
}

// TextRewriter заменяет первое вхождение имени исходной таблицы на
// " IF NOT EXISTS <table>". Если то же имя встречается в тексте раньше,
// заменено будет именно оно.
type TextRewriter struct{}

func (TextRewriter) Rewrite(ddl, table string) (string, error) {
	source, err := SourceTable(ddl)
	if err != nil {
		return "", err
	}
	return strings.Replace(ddl, source, " IF NOT EXISTS "+table, 1), nil
}

// SourceTable возвращает имя таблицы из CREATE TABLE как есть, вместе с кавычками
func SourceTable(ddl string) (string, error) {
	m := createTablePattern.FindStringSubmatch(ddl)
	if m == nil {
		return "", ErrTableNotFound
	}
	return m[1], nil
}

// TableFromQuery возвращает первое имя после FROM, пустую строку если его нет
func TableFromQuery(query string) string {
	m := fromPattern.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	return m[1]
}
