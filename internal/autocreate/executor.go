package autocreate

import (
	"context"

	"db_autocreate/internal/connectors"
	"db_autocreate/internal/domain"
)

// Execute выполняет DDL на writer без чтения результата
func Execute(ctx context.Context, opener connectors.Opener, info domain.ConnectionInfo, stmt string) error {
	dbc := dbContext{jdbcURL: info.JdbcURL, statement: stmt, table: info.Table}

	db, err := opener.Open(ctx, info)
	if err != nil {
		return dbError(KindExecution, "failed to connect to writer", dbc, err)
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		return dbError(KindExecution, "failed to acquire writer connection", dbc, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, stmt); err != nil {
		return dbError(KindExecution, "failed to create writer table", dbc, err)
	}
	return nil
}
