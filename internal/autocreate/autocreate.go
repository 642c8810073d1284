// Package autocreate создает таблицу writer по структуре таблицы reader.
//
// Порядок: флаг autoCreateTable и ровно одна таблица writer на MySQL, имя таблицы reader
// (table или FROM в querySql), проверка что reader - MySQL, SHOW CREATE TABLE на reader,
// переписывание DDL в CREATE TABLE IF NOT EXISTS <таблица writer>, выполнение на writer.
// Любая ошибка прерывает всю операцию, повторов нет.
package autocreate

import (
	"context"
	"errors"

	"db_autocreate/internal/config"
	"db_autocreate/internal/connectors"
	"db_autocreate/internal/ddl"
	"db_autocreate/internal/domain"
	"db_autocreate/internal/logger"
)

type Creator struct {
	opener   connectors.Opener
	rewriter ddl.Rewriter
	logger   *logger.Log
}

type Option func(*Creator)

// WithRewriter подменяет текстовую замену имени таблицы другим разбором DDL
func WithRewriter(r ddl.Rewriter) Option {
	return func(c *Creator) {
		c.rewriter = r
	}
}

func WithLogger(l *logger.Log) Option {
	return func(c *Creator) {
		c.logger = l
	}
}

func New(opener connectors.Opener, opts ...Option) *Creator {
	c := &Creator{
		opener:   opener,
		rewriter: ddl.TextRewriter{},
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Plan - все, что нужно для создания таблицы writer
type Plan struct {
	Source         domain.ConnectionInfo
	Destination    domain.ConnectionInfo
	SourceDDL      string
	DestinationDDL string
}

// Plan проходит все шаги, кроме выполнения DDL на writer.
// Если автосоздание выключено, возвращает nil без ошибки и без обращений к базам
func (c *Creator) Plan(ctx context.Context, reader, writer *config.Tree) (*Plan, error) {
	if !Enabled(writer) {
		c.logger.Debug("auto create table is disabled")
		return nil, nil
	}

	if err := ValidateDestination(writer); err != nil {
		return nil, err
	}
	destination := ResolveDestination(writer)
	if err := CheckDestination(destination); err != nil {
		return nil, err
	}
	c.logger.Debugf("writer resolved: %s", destination)

	source := ResolveSource(reader)
	if err := CheckSource(source); err != nil {
		return nil, err
	}
	c.logger.Debugf("reader resolved: %s", source)

	sourceDDL, err := FetchDDL(ctx, c.opener, source)
	if err != nil {
		return nil, err
	}
	c.logger.Infof("reader create table statement: %s", sourceDDL)

	destinationDDL, err := c.rewriter.Rewrite(sourceDDL, destination.Table)
	if err != nil {
		message := "failed to rewrite reader create table statement"
		if errors.Is(err, ddl.ErrTableNotFound) {
			message = "table name not found in reader create table statement"
		}
		return nil, &Error{
			Kind:      KindParse,
			Message:   message,
			Dialect:   dialectName(source.JdbcURL),
			Statement: sourceDDL,
			Table:     source.Table,
			Err:       err,
		}
	}
	c.logger.Infof("writer create table statement: %s", destinationDDL)

	return &Plan{
		Source:         source,
		Destination:    destination,
		SourceDDL:      sourceDDL,
		DestinationDDL: destinationDDL,
	}, nil
}

// Execute выполняет подготовленный DDL на writer. Повторный запуск ничего не меняет,
// так как в DDL есть IF NOT EXISTS
func (c *Creator) Execute(ctx context.Context, plan *Plan) error {
	if plan == nil {
		return nil
	}
	if err := Execute(ctx, c.opener, plan.Destination, plan.DestinationDDL); err != nil {
		return err
	}
	c.logger.Infof("writer table %s is ready", plan.Destination.Table)
	return nil
}

// CreateTable создает таблицу writer по reader, если это включено в конфиге writer
func (c *Creator) CreateTable(ctx context.Context, reader, writer *config.Tree) error {
	plan, err := c.Plan(ctx, reader, writer)
	if err != nil {
		return err
	}
	return c.Execute(ctx, plan)
}
