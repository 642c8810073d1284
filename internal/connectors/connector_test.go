package connectors

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"
	"time"

	"db_autocreate/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectOf(t *testing.T) {
	tests := []struct {
		url     string
		want    Dialect
		wantErr bool
	}{
		{url: "jdbc:mysql://db:3306/shop", want: MySQL},
		{url: "JDBC:MySQL://db/shop", want: MySQL},
		{url: "jdbc:mariadb://db:3306/shop", want: MySQL},
		{url: "jdbc:oracle:thin:@db:1521/ORCL", want: Oracle},
		{url: "jdbc:postgresql://db:5432/shop", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := DialectOf(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDialect)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsMySQLFamily(t *testing.T) {
	assert.True(t, IsMySQLFamily("jdbc:mysql://db:3306/shop"))
	assert.True(t, IsMySQLFamily("JDBC:MYSQL://db:3306/shop"))
	assert.True(t, IsMySQLFamily("jdbc:mariadb://db:3306/shop"))
	assert.False(t, IsMySQLFamily("jdbc:postgresql://db:5432/shop"))
	assert.False(t, IsMySQLFamily("jdbc:oracle:thin:@db:1521/ORCL"))
}

func TestMySQLDSN(t *testing.T) {
	info := domain.ConnectionInfo{
		JdbcURL:  "jdbc:mysql://db.local:3307/shop?useUnicode=true&characterEncoding=utf8&connectTimeout=2000&serverTimezone=UTC",
		Username: "root",
		Password: "p@ss:word",
	}
	dsn, err := MySQL.DSN(info)
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "p@ss:word", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db.local:3307", cfg.Addr)
	assert.Equal(t, "shop", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Params, "jdbc-only parameters must not reach the driver")
}

func TestMySQLDSN_DefaultsAndErrors(t *testing.T) {
	dsn, err := MySQL.DSN(domain.ConnectionInfo{JdbcURL: "jdbc:mariadb://a,b/shop"})
	require.NoError(t, err)
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "a:3306", cfg.Addr)

	for _, bad := range []string{
		"jdbc:mysql:db/shop",
		"jdbc:mysql:///shop",
		"jdbc:mysql://db/shop?connectTimeout=soon",
	} {
		_, err := MySQL.DSN(domain.ConnectionInfo{JdbcURL: bad})
		assert.Error(t, err, bad)
	}
}

func TestOracleDSN(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		host    string
		path    string
		sid     string
		wantErr bool
	}{
		{name: "service", url: "jdbc:oracle:thin:@ora:1522/ORCLPDB", host: "ora:1522", path: "/ORCLPDB"},
		{name: "ezconnect", url: "jdbc:oracle:thin:@//ora/ORCLPDB", host: "ora:1521", path: "/ORCLPDB"},
		{name: "sid", url: "jdbc:oracle:thin:@ora:1521:ORCL", host: "ora:1521", sid: "ORCL"},
		{name: "no at", url: "jdbc:oracle:thin:ora:1521:ORCL", wantErr: true},
		{name: "bad port", url: "jdbc:oracle:thin:@ora:x/ORCL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := Oracle.DSN(domain.ConnectionInfo{JdbcURL: tt.url, Username: "scott", Password: "tiger"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			u, err := url.Parse(dsn)
			require.NoError(t, err)
			assert.Equal(t, "oracle", u.Scheme)
			assert.Equal(t, tt.host, u.Host)
			assert.Equal(t, "scott", u.User.Username())
			if tt.path != "" {
				assert.Equal(t, tt.path, u.Path)
			}
			if tt.sid != "" {
				assert.Equal(t, tt.sid, u.Query().Get("SID"))
			}
		})
	}
}

func TestSQLOpener_UnsupportedDialect(t *testing.T) {
	_, err := NewSQLOpener().Open(context.Background(), domain.ConnectionInfo{JdbcURL: "jdbc:sqlite:/tmp/x.db"})
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

type mockOpener struct {
	db  *sql.DB
	err error
}

func (m mockOpener) Open(context.Context, domain.ConnectionInfo) (*sql.DB, error) {
	return m.db, m.err
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	require.NoError(t, Ping(context.Background(), mockOpener{db: db}, domain.ConnectionInfo{}))
	assert.NoError(t, mock.ExpectationsWereMet())

	failure := errors.New("ping failed: connection refused")
	assert.ErrorIs(t, Ping(context.Background(), mockOpener{err: failure}, domain.ConnectionInfo{}), failure)
}
