package iocdw

import (
	"fmt"

	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
)

// ConnectionError is returned when the warehouse connection fails.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with a user-friendly
// message.
func NewConnectionError(host string, port int, database, user string, cause error) error {
	userBase := gnlib.MessageBase{
		Msg: `<title>Warehouse Connection Failed</title>

<warning>Could not connect to the clinical data warehouse.</warning>

<em>Possible causes:</em>
  • PostgreSQL is not running
  • Database configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check your configuration file:
     <em>~/.config/dfextract/config.yaml</em>

  4. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s
`,
		Vars: []any{
			host, port,
			host, user,
			host, port, database, user,
		},
	}

	return ConnectionError{
		error: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, cause),
		MessageBase: userBase,
	}
}

// NotConnectedError is returned when an operation runs before
// Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.CDWNotConnectedError,
		Msg:  "Not connected to the warehouse",
		Err:  fmt.Errorf("operator used before Connect"),
	}
}

// ExecError wraps a failed warehouse statement.
func ExecError(sql string, cause error) error {
	return &gn.Error{
		Code: errcode.CDWExecError,
		Msg:  "Warehouse statement failed",
		Err:  fmt.Errorf("exec %q: %w", firstLine(sql), cause),
	}
}

// QueryError wraps a failed warehouse query.
func QueryError(sql string, cause error) error {
	return &gn.Error{
		Code: errcode.CDWQueryError,
		Msg:  "Warehouse query failed",
		Err:  fmt.Errorf("query %q: %w", firstLine(sql), cause),
	}
}

// StageClearError wraps a failure to clear a staging table.
func StageClearError(table string, cause error) error {
	return &gn.Error{
		Code: errcode.StageClearError,
		Msg:  fmt.Sprintf("Cannot clear staging table %s", table),
		Err:  fmt.Errorf("clear %s: %w", table, cause),
	}
}

// StageInsertError wraps a failure to populate a staging table.
func StageInsertError(table string, cause error) error {
	return &gn.Error{
		Code: errcode.StageInsertError,
		Msg:  fmt.Sprintf("Cannot populate staging table %s", table),
		Err:  fmt.Errorf("insert into %s: %w", table, cause),
	}
}

func firstLine(sql string) string {
	for i, r := range sql {
		if r == '\n' {
			return sql[:i] + " ..."
		}
	}
	return sql
}
