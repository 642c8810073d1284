package autocreate

import (
	"context"
	"database/sql"
	"fmt"

	"db_autocreate/internal/connectors"
	"db_autocreate/internal/domain"
)

const showCreateTable = "SHOW CREATE TABLE "

// FetchDDL выполняет SHOW CREATE TABLE на reader и возвращает второй столбец первой строки.
// Подключение открывается только под этот запрос и закрывается на любом выходе
func FetchDDL(ctx context.Context, opener connectors.Opener, info domain.ConnectionInfo) (string, error) {
	if !info.HasTable() {
		return "", &Error{
			Kind:    KindResolution,
			Message: "no reader table resolvable from table or querySql",
			Dialect: dialectName(info.JdbcURL),
		}
	}

	stmt := showCreateTable + info.Table
	dbc := dbContext{jdbcURL: info.JdbcURL, statement: stmt, table: info.Table}

	db, err := opener.Open(ctx, info)
	if err != nil {
		return "", dbError(KindQuery, "failed to connect to reader", dbc, err)
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		return "", dbError(KindQuery, "failed to acquire reader connection", dbc, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return "", dbError(KindQuery, "failed to query reader create table statement", dbc, err)
	}
	defer rows.Close()

	var createSQL sql.NullString
	if rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return "", dbError(KindQuery, "failed to get columns", dbc, err)
		}
		if len(cols) < 2 {
			return "", dbError(KindQuery, "unexpected result shape", dbc,
				fmt.Errorf("expected at least 2 columns, got %d", len(cols)))
		}

		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return "", dbError(KindQuery, "row scan failed", dbc, err)
		}
		createSQL = values[1]
	}
	if err := rows.Err(); err != nil {
		return "", dbError(KindQuery, "rows iteration error", dbc, err)
	}

	if !createSQL.Valid || createSQL.String == "" {
		return "", &Error{
			Kind:      KindQuery,
			Message:   "reader create table statement is not retrievable",
			Dialect:   dbc.dialect(),
			Statement: stmt,
			Table:     info.Table,
		}
	}
	return createSQL.String, nil
}

func (c dbContext) dialect() string {
	return dialectName(c.jdbcURL)
}
