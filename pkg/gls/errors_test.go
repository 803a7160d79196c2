package gls_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/gls/pkg/gls"
)

func TestLabelError_WrapsCause(t *testing.T) {
	err := &gls.LabelError{
		Code:    gls.CodeProtocol,
		Message: "carrier response incomplete",
		Unit:    "2",
		Cause:   gls.ErrMissingTrackingNumber,
	}

	assert.ErrorIs(t, err, gls.ErrMissingTrackingNumber)
	assert.Contains(t, err.Error(), "protocol")
	assert.Contains(t, err.Error(), "unit 2")
}

func TestLabelError_IsMatchesByCode(t *testing.T) {
	err := &gls.LabelError{Code: gls.CodeTransport, Message: "carrier call failed"}

	assert.ErrorIs(t, err, &gls.LabelError{Code: gls.CodeTransport})
	assert.NotErrorIs(t, err, &gls.LabelError{Code: gls.CodePersistence})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, gls.IsRetryable(fmt.Errorf("save: %w", gls.ErrParcelNumberTaken)))

	assert.False(t, gls.IsRetryable(gls.ErrMissingTrackingNumber))
	assert.False(t, gls.IsRetryable(gls.ErrParcelNumberExhausted))
	assert.False(t, gls.IsRetryable(gls.ErrInconsistentState))
	assert.False(t, gls.IsRetryable(errors.New("connection refused")))
}
