package connectors

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"db_autocreate/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const defaultMySQLPort = "3306"

// mysqlDSN переводит jdbc:mysql://host:port/db?params в DSN go-sql-driver.
// Из параметров JDBC переносятся только те, у которых есть аналог в драйвере,
// остальные драйвер принял бы за системные переменные сервера
func mysqlDSN(info domain.ConnectionInfo) (string, error) {
	raw := strings.TrimSpace(info.JdbcURL)
	if i := strings.Index(raw, "://"); i >= 0 {
		raw = "mysql" + raw[i:]
	} else {
		return "", fmt.Errorf("malformed jdbcUrl: %s", info.JdbcURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("malformed jdbcUrl %s: %w", info.JdbcURL, err)
	}

	// jdbc:mysql://h1,h2/db - берем первый хост
	host := strings.Split(u.Host, ",")[0]
	if host == "" {
		return "", fmt.Errorf("jdbcUrl has no host: %s", info.JdbcURL)
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, defaultMySQLPort)
	}

	cfg := mysql.NewConfig()
	cfg.User = info.Username
	cfg.Passwd = info.Password
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.ParseTime = true

	q := u.Query()
	if v := q.Get("connectTimeout"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return "", fmt.Errorf("bad connectTimeout %q: %w", v, err)
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	if v := q.Get("socketTimeout"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return "", fmt.Errorf("bad socketTimeout %q: %w", v, err)
		}
		cfg.ReadTimeout = time.Duration(ms) * time.Millisecond
		cfg.WriteTimeout = cfg.ReadTimeout
	}
	if v := q.Get("serverTimezone"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return "", fmt.Errorf("bad serverTimezone %q: %w", v, err)
		}
		cfg.Loc = loc
	}
	if strings.EqualFold(q.Get("useSSL"), "true") {
		cfg.TLSConfig = "preferred"
	}

	return cfg.FormatDSN(), nil
}
