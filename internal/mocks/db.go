package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
)

// NewTxDB returns a real *sql.DB backed by a no-op driver. Begin, Commit
// and Rollback all succeed without side effects, which lets tests drive
// store.RunInTransaction while the mock stores ignore the transaction
// handle entirely.
func NewTxDB() *sql.DB {
	return sql.OpenDB(noopConnector{})
}

type noopConnector struct{}

func (noopConnector) Connect(context.Context) (driver.Conn, error) { return noopConn{}, nil }
func (noopConnector) Driver() driver.Driver                        { return noopDriver{} }

type noopDriver struct{}

func (noopDriver) Open(string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("mocks: statements not supported")
}
func (noopConn) Close() error              { return nil }
func (noopConn) Begin() (driver.Tx, error) { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
