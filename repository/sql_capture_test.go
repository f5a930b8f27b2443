package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// noConnPool satisfies gorm.ConnPool without a server; dry-run sessions never call it
type noConnPool struct{}

var errNoConn = errors.New("no connection in dry run")

func (noConnPool) PrepareContext(context.Context, string) (*sql.Stmt, error) { return nil, errNoConn }
func (noConnPool) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoConn
}
func (noConnPool) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoConn
}
func (noConnPool) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }

// statementCapture records the last query gorm built, with its bound vars
type statementCapture struct {
	mu   sync.Mutex
	sql  string
	vars []any
}

func (c *statementCapture) record(db *gorm.DB) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sql = db.Statement.SQL.String()
	c.vars = append([]any(nil), db.Statement.Vars...)
}

func (c *statementCapture) last() (string, []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sql, c.vars
}

// newDryRunDB builds statements without a server; Scan runs through the row callbacks,
// so the capture hooks in right after gorm:row has rendered the SQL
func newDryRunDB() (*gorm.DB, *statementCapture, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: noConnPool{}}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		return nil, nil, err
	}

	capture := &statementCapture{}
	if err := db.Callback().Row().After("gorm:row").Register("test:capture_statement", capture.record); err != nil {
		return nil, nil, err
	}
	return db, capture, nil
}
