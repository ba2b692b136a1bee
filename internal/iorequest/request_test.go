package iorequest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdrkit/dfextract/internal/iorequest"
	"github.com/cdrkit/dfextract/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestJSON = `{
  "label": "diabetes cohort",
  "concepts": {
    "names": ["Diabetes [250 facts]", "Hemoglobin A1c"],
    "keys": [
      "\\\\i2b2\\Diagnoses\\Diabetes\\",
      "\\\\i2b2\\Labs\\A1c\\"
    ]
  },
  "patient_set": 77,
  "filename": "diabetes",
  "username": "alice"
}`

func writeRequest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRequest(t, "request-0042.json", requestJSON)

	req, err := iorequest.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "diabetes cohort", req.Label)
	assert.Equal(t, 77, req.PatientSet)
	assert.Equal(t, "diabetes", req.Filename)
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, 2, req.Concepts.Len())
	assert.Equal(t, `\\i2b2\Diagnoses\Diabetes\`, req.Concepts.Keys[0])
	assert.Equal(t, "Hemoglobin A1c", req.Concepts.Names[1])
}

func TestLoadMissing(t *testing.T) {
	_, err := iorequest.Load(
		filepath.Join(t.TempDir(), "nope.json"),
	)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadRequestError, gnErr.Code)
}

func TestLoadBadJSON(t *testing.T) {
	path := writeRequest(t, "bad.json", "{not json")

	_, err := iorequest.Load(path)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadRequestError, gnErr.Code)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		msg     string
		content string
	}{
		{
			"no patient set",
			`{"concepts": {"names": ["a"], "keys": ["\\\\t\\a\\"]},
			  "filename": "x", "username": "u"}`,
		},
		{
			"no concepts",
			`{"patient_set": 1, "filename": "x", "username": "u"}`,
		},
		{
			"mismatched lists",
			`{"patient_set": 1,
			  "concepts": {"names": ["a", "b"], "keys": ["\\\\t\\a\\"]},
			  "filename": "x", "username": "u"}`,
		},
	}

	for _, v := range tests {
		path := writeRequest(t, "req.json", v.content)

		_, err := iorequest.Load(path)
		require.Error(t, err, v.msg)

		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr, v.msg)
		assert.Equal(t, errcode.BadRequestError, gnErr.Code, v.msg)
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "request-0042",
		iorequest.Prefix("/var/spool/dfextract/request-0042.json"))
	assert.Equal(t, "plain", iorequest.Prefix("plain"))
}

func TestDatasetName(t *testing.T) {
	path := writeRequest(t, "request-0042.json", requestJSON)
	req, err := iorequest.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "request-0042_diabetes.db",
		iorequest.DatasetName(path, req, ".db"))
}
