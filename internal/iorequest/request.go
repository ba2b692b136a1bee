// Package iorequest reads queued extraction requests from disk.
// A request is a JSON file produced by the web plug-in; its base
// name carries a queue-assigned prefix that becomes part of the
// dataset filename.
package iorequest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/gnames/gnfmt"
)

// Load reads and decodes a request file.
func Load(path string) (extract.Request, error) {
	var req extract.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, ReadError(path, err)
	}

	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &req); err != nil {
		return req, DecodeError(path, err)
	}

	if req.PatientSet == 0 || req.Concepts.Len() == 0 {
		return req, BadRequestError(path)
	}
	if len(req.Concepts.Names) != len(req.Concepts.Keys) {
		return req, BadRequestError(path)
	}

	return req, nil
}

// Prefix returns the queue-assigned prefix of a request file: its
// base name without the .json extension. The dataset filename is
// "<prefix>_<request filename>".
func Prefix(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DatasetName combines the request-file prefix with the requested
// filename and extension.
func DatasetName(path string, req extract.Request, ext string) string {
	return Prefix(path) + "_" + req.Filename + ext
}
