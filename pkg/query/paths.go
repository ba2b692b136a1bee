package query

import (
	"strings"
)

// tableAccessSegments is the number of leading segments a metadata
// key carries before the concept path proper: keys look like
// `\\table_code\i2b2\Demographics\...\`, which splits into two empty
// segments, the table-access code, and the path.
const tableAccessSegments = 3

// ResolvePaths strips the table-access prefix off metadata keys,
// returning the remaining segments rejoined with the separator. The
// result keeps its leading and trailing separators so it works as a
// full-path prefix predicate.
//
// A key with fewer segments than the table-access prefix is rejected
// as malformed rather than silently truncated.
//
// Note: this assumes just one TABLE_ACCESS context per request; keys
// from mixed contexts are not detected.
func ResolvePaths(keys []string) ([]string, error) {
	paths := make([]string, len(keys))
	for i, key := range keys {
		segments := strings.Split(key, Sep)
		if len(segments) <= tableAccessSegments {
			return nil, MalformedKeyError(key)
		}
		paths[i] = Sep + strings.Join(segments[tableAccessSegments:], Sep)
	}
	return paths, nil
}
