package iocopy

import (
	"fmt"

	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(table string, err error) error {
	return &gn.Error{
		Code: errcode.CopyReadError,
		Msg:  fmt.Sprintf("Cannot read source rows for '%s'", table),
		Err:  err,
	}
}

func InsertError(table string, err error) error {
	return &gn.Error{
		Code: errcode.CopyInsertError,
		Msg:  fmt.Sprintf("Cannot copy rows into '%s'", table),
		Err:  err,
	}
}
