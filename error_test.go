package docsjson_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docsjson"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsjson.Errorf(docsjson.ENOTFOUND, "docs for %q not found", "elm/core")

	assert.Equal(t, docsjson.ENOTFOUND, docsjson.ErrorCode(err))
	assert.Equal(t, "docs for \"elm/core\" not found", docsjson.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("downloading: %w", docsjson.Errorf(docsjson.EUPSTREAM, "HTTP 502"))

	assert.Equal(t, docsjson.EUPSTREAM, docsjson.ErrorCode(err))
	assert.Equal(t, "HTTP 502", docsjson.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("disk full")

	assert.Equal(t, docsjson.EINTERNAL, docsjson.ErrorCode(err))
	assert.Equal(t, "Internal error.", docsjson.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsjson.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsjson.ErrorMessage(nil))
}
