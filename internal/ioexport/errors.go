package ioexport

import (
	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
)

func JobError(err error) error {
	return &gn.Error{
		Code: errcode.ExportJobError,
		Msg:  "Cannot write job metadata",
		Err:  err,
	}
}

func FactsError(err error) error {
	return &gn.Error{
		Code: errcode.ExportFactsError,
		Msg:  "Cannot export observation facts",
		Err:  err,
	}
}

func TermsError(err error) error {
	return &gn.Error{
		Code: errcode.ExportTermsError,
		Msg:  "Cannot export dictionary terms",
		Err:  err,
	}
}

func PatientsError(err error) error {
	return &gn.Error{
		Code: errcode.ExportPatientsError,
		Msg:  "Cannot export demographics",
		Err:  err,
	}
}

func SummaryError(err error) error {
	return &gn.Error{
		Code: errcode.ExportSummaryError,
		Msg:  "Cannot build dataset summary",
		Err:  err,
	}
}
