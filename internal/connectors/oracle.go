package connectors

import (
	"fmt"
	"strconv"
	"strings"

	"db_autocreate/internal/domain"

	go_ora "github.com/sijms/go-ora/v2"
)

const defaultOraclePort = 1521

// oracleDSN понимает три формы thin-адреса:
//
//	jdbc:oracle:thin:@host:port:SID
//	jdbc:oracle:thin:@host:port/service
//	jdbc:oracle:thin:@//host:port/service
func oracleDSN(info domain.ConnectionInfo) (string, error) {
	i := strings.Index(info.JdbcURL, "@")
	if i < 0 {
		return "", fmt.Errorf("malformed jdbcUrl: %s", info.JdbcURL)
	}
	addr := strings.TrimPrefix(strings.TrimSpace(info.JdbcURL[i+1:]), "//")

	var (
		hostPort string
		service  string
		options  map[string]string
	)
	if slash := strings.Index(addr, "/"); slash >= 0 {
		hostPort, service = addr[:slash], addr[slash+1:]
	} else {
		parts := strings.Split(addr, ":")
		if len(parts) != 3 {
			return "", fmt.Errorf("malformed jdbcUrl: %s", info.JdbcURL)
		}
		hostPort = parts[0] + ":" + parts[1]
		options = map[string]string{"SID": parts[2]}
	}

	host, port := hostPort, defaultOraclePort
	if c := strings.LastIndex(hostPort, ":"); c >= 0 {
		p, err := strconv.Atoi(hostPort[c+1:])
		if err != nil {
			return "", fmt.Errorf("bad port in jdbcUrl %s: %w", info.JdbcURL, err)
		}
		host, port = hostPort[:c], p
	}
	if host == "" {
		return "", fmt.Errorf("jdbcUrl has no host: %s", info.JdbcURL)
	}

	return go_ora.BuildUrl(host, port, service, info.Username, info.Password, options), nil
}
