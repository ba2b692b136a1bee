package iorequest

import (
	"fmt"

	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadRequestError,
		Msg:  fmt.Sprintf("Cannot read request file '%s'", path),
		Err:  err,
	}
}

func DecodeError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadRequestError,
		Msg:  fmt.Sprintf("Cannot decode request file '%s'", path),
		Err:  err,
	}
}

func BadRequestError(path string) error {
	return &gn.Error{
		Code: errcode.BadRequestError,
		Msg: fmt.Sprintf(
			"Request '%s' needs a patient set and matching concept names and keys",
			path,
		),
	}
}
