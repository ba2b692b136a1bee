package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadRequestError
	BadRequestError

	// Logging errors
	CreateLogFileError

	// Source repository errors
	CDWConnectionError
	CDWNotConnectedError
	CDWQueryError
	CDWExecError

	// Concept resolution errors
	MalformedKeyError

	// Staging errors
	StageClearError
	StageInsertError

	// Destination store errors
	DestOpenError
	DestSchemaError
	DestViewError
	DestInsertError
	DestExecError
	DestQueryError

	// Transfer errors
	CopyReadError
	CopyInsertError

	// Export errors
	ExportJobError
	ExportFactsError
	ExportTermsError
	ExportPatientsError
	ExportSummaryError
)
