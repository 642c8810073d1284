package autocreate

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"db_autocreate/internal/config"
	"db_autocreate/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// fakeOpener выдает заранее подготовленные sqlmock-подключения по очереди
// и запоминает, к чему подключались
type fakeOpener struct {
	dbs    []*sql.DB
	opened []domain.ConnectionInfo
	err    error
}

func (f *fakeOpener) Open(_ context.Context, info domain.ConnectionInfo) (*sql.DB, error) {
	f.opened = append(f.opened, info)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.dbs) == 0 {
		return nil, fmt.Errorf("unexpected connection to %s", info)
	}
	db := f.dbs[0]
	f.dbs = f.dbs[1:]
	return db, nil
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return db, mock
}

func tree(t *testing.T, body string) *config.Tree {
	t.Helper()
	tr, err := config.ParseTree([]byte(body))
	require.NoError(t, err)
	return tr
}

const (
	readerTable = `
username: reader
password: rpass
connection:
  - jdbcUrl: ["jdbc:mysql://src:3306/shop"]
    table: ["orders"]
`
	readerQuery = `
username: reader
password: rpass
connection:
  - jdbcUrl: ["jdbc:mysql://src:3306/shop"]
    querySql: ["SELECT a,b FROM ` + "`orders`" + ` WHERE a>1"]
`
	writerSingle = `
autoCreateTable: true
username: writer
password: wpass
connection:
  - jdbcUrl: "jdbc:mysql://dst:3306/shop"
    table: ["orders_copy"]
`
	ordersDDL = "CREATE TABLE `orders` (id INT)"
)

func showCreateRows(ddl string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Table", "Create Table"}).AddRow("orders", ddl)
}
