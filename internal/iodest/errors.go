package iodest

import (
	"fmt"

	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.DestOpenError,
		Msg:  fmt.Sprintf("Cannot open dataset file '%s'", path),
		Err:  err,
	}
}

func SchemaError(err error) error {
	return &gn.Error{
		Code: errcode.DestSchemaError,
		Msg:  "Cannot initialize dataset schema",
		Err:  err,
	}
}

func ViewError(view string, err error) error {
	return &gn.Error{
		Code: errcode.DestViewError,
		Msg:  fmt.Sprintf("Cannot create view '%s'", view),
		Err:  err,
	}
}

func InsertError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DestInsertError,
		Msg:  fmt.Sprintf("Cannot insert rows into '%s'", table),
		Err:  err,
	}
}

func ExecError(sqlStr string, err error) error {
	return &gn.Error{
		Code: errcode.DestExecError,
		Msg:  fmt.Sprintf("Cannot run statement '%s'", firstLine(sqlStr)),
		Err:  err,
	}
}

func QueryError(sqlStr string, err error) error {
	return &gn.Error{
		Code: errcode.DestQueryError,
		Msg:  fmt.Sprintf("Cannot run query '%s'", firstLine(sqlStr)),
		Err:  err,
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + "..."
		}
	}
	return s
}
