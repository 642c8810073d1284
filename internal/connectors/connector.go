package connectors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"db_autocreate/internal/domain"
)

var ErrUnsupportedDialect = errors.New("unsupported database type")

// Dialect - семейство СУБД, определяемое по jdbcUrl
type Dialect string

const (
	MySQL  Dialect = "mysql"
	Oracle Dialect = "oracle"
)

// DialectOf определяет СУБД по префиксу jdbcUrl
func DialectOf(jdbcURL string) (Dialect, error) {
	u := strings.ToLower(strings.TrimSpace(jdbcURL))
	switch {
	case strings.HasPrefix(u, "jdbc:mysql:"), strings.HasPrefix(u, "jdbc:mariadb:"):
		return MySQL, nil
	case strings.HasPrefix(u, "jdbc:oracle:"):
		return Oracle, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDialect, jdbcURL)
	}
}

// IsMySQLFamily - проверка по подстроке, без разбора адреса
func IsMySQLFamily(jdbcURL string) bool {
	u := strings.ToLower(jdbcURL)
	return strings.Contains(u, "mysql") || strings.Contains(u, "mariadb")
}

// Driver - имя драйвера database/sql
func (d Dialect) Driver() string {
	return string(d)
}

// DSN собирает строку подключения драйвера из jdbcUrl и учетных данных
func (d Dialect) DSN(info domain.ConnectionInfo) (string, error) {
	switch d {
	case MySQL:
		return mysqlDSN(info)
	case Oracle:
		return oracleDSN(info)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDialect, d)
	}
}

// Opener открывает отдельное подключение под одну операцию
type Opener interface {
	Open(ctx context.Context, info domain.ConnectionInfo) (*sql.DB, error)
}

// SQLOpener открывает подключение через database/sql без пула: одно соединение на операцию
type SQLOpener struct {
	PingTimeout time.Duration
}

func NewSQLOpener() *SQLOpener {
	return &SQLOpener{PingTimeout: 5 * time.Second}
}

func (o *SQLOpener) Open(ctx context.Context, info domain.ConnectionInfo) (*sql.DB, error) {
	dialect, err := DialectOf(info.JdbcURL)
	if err != nil {
		return nil, err
	}
	dsn, err := dialect.DSN(info)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.Driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, o.PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return db, nil
}

// Ping проверяет, что к базе можно подключиться
func Ping(ctx context.Context, opener Opener, info domain.ConnectionInfo) error {
	db, err := opener.Open(ctx, info)
	if err != nil {
		return err
	}
	return db.Close()
}
