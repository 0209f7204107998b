package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanErrorFormatting(t *testing.T) {
	err := NewScanErrorWithTarget(CodeTargetInvalid, "invalid target specification", "bad host")
	assert.Equal(t, "[TARGET_INVALID] invalid target specification (target: bad host)", err.Error())

	plain := NewScanError(CodeValidation, "no targets specified")
	assert.Equal(t, "[VALIDATION] no targets specified", plain.Error())
}

func TestConfigErrorFormatting(t *testing.T) {
	err := NewConfigFieldError(CodeValidation, "invalid configuration value", "scanning.timeout", 0)
	assert.Equal(t, "[VALIDATION] invalid configuration value (field: scanning.timeout)", err.Error())
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying failure")

	scanErr := WrapScanError(CodeCanceled, "scan canceled", cause)
	assert.ErrorIs(t, scanErr, cause)

	cfgErr := WrapConfigError(CodeConfiguration, "failed to parse config file", cause)
	assert.ErrorIs(t, cfgErr, cause)
}

func TestCodeExtraction(t *testing.T) {
	assert.Equal(t, CodeValidation, GetCode(ErrNoTargets()))
	assert.Equal(t, CodeValidation, GetCode(ErrNoPorts()))
	assert.Equal(t, CodeTargetInvalid, GetCode(ErrInvalidTarget("x")))
	assert.Equal(t, CodeFileNotFound, GetCode(ErrTargetFile("missing.txt", stderrors.New("no such file"))))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("anonymous")))

	assert.True(t, IsCode(ErrNoPorts(), CodeValidation))
	assert.False(t, IsCode(ErrNoPorts(), CodeConfiguration))
}

func TestErrTargetFileKeepsPath(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := ErrTargetFile("/etc/targets", cause)

	require.Equal(t, "/etc/targets", err.Value)
	assert.ErrorIs(t, err, cause)
}
