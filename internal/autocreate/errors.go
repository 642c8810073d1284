package autocreate

import (
	"errors"
	"fmt"
	"strings"

	"db_autocreate/internal/connectors"

	"github.com/go-sql-driver/mysql"
)

// Kind - категория ошибки автосоздания таблицы. Ни одна из них не повторяется автоматически
type Kind int

const (
	KindConfig Kind = iota + 1
	KindResolution
	KindQuery
	KindParse
	KindExecution
)

// Сентинелы для errors.Is: errors.Is(err, autocreate.ErrConfig)
var (
	ErrConfig     = errors.New("configuration error")
	ErrResolution = errors.New("resolution error")
	ErrQuery      = errors.New("query error")
	ErrParse      = errors.New("parse error")
	ErrExecution  = errors.New("execution error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindResolution:
		return ErrResolution
	case KindQuery:
		return ErrQuery
	case KindParse:
		return ErrParse
	case KindExecution:
		return ErrExecution
	default:
		return nil
	}
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error несет контекст для лога: СУБД, текст запроса, таблицу и код ошибки сервера
type Error struct {
	Kind      Kind
	Message   string
	Dialect   string
	Statement string
	Table     string
	// Code и SQLState заполняются, если драйвер MySQL вернул ошибку сервера
	Code     uint16
	SQLState string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)

	var details []string
	if e.Dialect != "" {
		details = append(details, "dialect="+e.Dialect)
	}
	if e.Table != "" {
		details = append(details, "table="+e.Table)
	}
	if e.Code != 0 {
		details = append(details, fmt.Sprintf("code=%d", e.Code))
	}
	if e.SQLState != "" {
		details = append(details, "sqlstate="+e.SQLState)
	}
	if e.Statement != "" {
		details = append(details, fmt.Sprintf("statement=%q", e.Statement))
	}
	if len(details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(details, " "))
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func configError(format string, args ...any) error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// dbError оборачивает ошибку базы, вытаскивая из нее код MySQL, если он есть
func dbError(kind Kind, message string, info dbContext, err error) error {
	e := &Error{
		Kind:      kind,
		Message:   message,
		Dialect:   dialectName(info.jdbcURL),
		Statement: info.statement,
		Table:     info.table,
		Err:       err,
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		e.Code = me.Number
		e.SQLState = strings.TrimRight(string(me.SQLState[:]), "\x00")
	}
	return e
}

type dbContext struct {
	jdbcURL   string
	statement string
	table     string
}

func dialectName(jdbcURL string) string {
	d, err := connectors.DialectOf(jdbcURL)
	if err != nil {
		return "unknown"
	}
	return string(d)
}
