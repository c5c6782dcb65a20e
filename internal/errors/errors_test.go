package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Invalid argument provided", f.New(errors.ErrInvalidArgument).Error())
	assert.Equal(t, "custom", f.WithMessage(errors.ErrInternal, "custom").Error())
	assert.Equal(t, "Invalid argument provided: out of range",
		f.WithData(errors.ErrInvalidArgument, "out of range").Error())
	assert.Equal(t, "unknown_code", f.New(errors.ErrorCode("unknown_code")).Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.New().Wrap(errors.ErrOperationFailed, cause)

	assert.Equal(t, "Operation failed: boom", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, errors.ErrOperationFailed, err.Code())
}

func TestIsMatchesByCode(t *testing.T) {
	f := errors.New()
	err := fmt.Errorf("context: %w", f.WithData(errors.ErrFanControl, "step failed"))

	assert.True(t, errors.Is(err, f.New(errors.ErrFanControl)))
	assert.False(t, errors.Is(err, f.New(errors.ErrPowerControl)))
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.New(errors.ErrTimeout)
	outer := f.Wrap(errors.ErrOperationFailed, inner)

	assert.True(t, errors.HasCode(outer, errors.ErrOperationFailed))
	assert.True(t, errors.HasCode(outer, errors.ErrTimeout))
	assert.False(t, errors.HasCode(outer, errors.ErrInternal))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrInternal))
	assert.False(t, errors.HasCode(nil, errors.ErrInternal))
}

func TestWithMessageKeepsCode(t *testing.T) {
	err := errors.New().New(errors.ErrReadConfig).WithMessage("bad file")

	var coded errors.Error
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, errors.ErrReadConfig, coded.Code())
	assert.Equal(t, "bad file", coded.Error())
}
