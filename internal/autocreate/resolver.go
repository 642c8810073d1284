package autocreate

import (
	"strings"

	"db_autocreate/internal/config"
	"db_autocreate/internal/connectors"
	"db_autocreate/internal/ddl"
	"db_autocreate/internal/domain"
	"db_autocreate/internal/tables"
)

// ResolveSource собирает подключение reader. Имя таблицы берется из table[0],
// иначе из первого FROM в querySql[0]. Если не нашлось ни того, ни другого,
// Table остается пустой и ошибку вернет FetchDDL
func ResolveSource(reader *config.Tree) domain.ConnectionInfo {
	info := domain.ConnectionInfo{
		Username: credential(reader, config.KeyUsername),
		Password: credential(reader, config.KeyPassword),
	}
	info.JdbcURL, _ = reader.FirstString(connectionPath(config.KeyJdbcURL))

	if table, ok := reader.FirstString(connectionPath(config.KeyTable)); ok {
		info.Table = table
	} else if query, ok := reader.FirstString(connectionPath(config.KeyQuerySQL)); ok {
		info.Table = ddl.TableFromQuery(query)
	}
	return info
}

// CheckSource проверяет, что reader - MySQL. Сеть не трогается
func CheckSource(info domain.ConnectionInfo) error {
	if strings.TrimSpace(info.JdbcURL) == "" {
		return configError("jdbcUrl of reader connection[0] is not configured")
	}
	if !connectors.IsMySQLFamily(info.JdbcURL) {
		return configError("auto create table only supports mysql to mysql, reader is %s", info.JdbcURL)
	}
	return nil
}

// CheckDestination проверяет, что writer - MySQL: DDL из SHOW CREATE TABLE другой СУБД не подходит
func CheckDestination(info domain.ConnectionInfo) error {
	if strings.TrimSpace(info.JdbcURL) == "" {
		return configError("jdbcUrl of writer connection[0] is not configured")
	}
	if !connectors.IsMySQLFamily(info.JdbcURL) {
		return configError("auto create table only supports mysql to mysql, writer is %s", info.JdbcURL)
	}
	return nil
}

// ResolveDestination собирает подключение writer по первому connection
func ResolveDestination(writer *config.Tree) domain.ConnectionInfo {
	info := domain.ConnectionInfo{
		Username: credential(writer, config.KeyUsername),
		Password: credential(writer, config.KeyPassword),
	}
	info.JdbcURL, _ = writer.FirstString(connectionPath(config.KeyJdbcURL))

	// после ValidateDestination шаблон раскрывается ровно в одну таблицу
	if names := tables.Expand(writer.Strings(connectionPath(config.KeyTable))); len(names) > 0 {
		info.Table = names[0]
	}
	return info
}

// credential ищет ключ сначала в connection[0], потом на уровне parameter
func credential(tree *config.Tree, key string) string {
	v, _ := tree.Lookup(connectionPath(key), key)
	return v
}
