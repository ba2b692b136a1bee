package query

import (
	"fmt"

	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
)

// MalformedKeyError is returned for a metadata key too short to
// carry a table-access prefix.
func MalformedKeyError(key string) error {
	return &gn.Error{
		Code: errcode.MalformedKeyError,
		Msg:  fmt.Sprintf("Malformed metadata key '%s'", key),
		Err: fmt.Errorf(
			"key %q has fewer than %d leading segments", key,
			tableAccessSegments),
	}
}
