package krpcdocs_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/krpcdocs"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := krpcdocs.Errorf(krpcdocs.ENOTFOUND, "page %q not found", "test")

	assert.Equal(t, krpcdocs.ENOTFOUND, krpcdocs.ErrorCode(err))
	assert.Equal(t, "page \"test\" not found", krpcdocs.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, krpcdocs.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, krpcdocs.EINTERNAL, krpcdocs.ErrorCode(errors.New("disk full")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, krpcdocs.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", krpcdocs.ErrorMessage(errors.New("disk full")))
}
