package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInsufficientData, KindOf(InsufficientData("too few observations")))
	assert.Equal(t, KindInvalidInput, KindOf(InvalidInput("negative quantity")))
	assert.Equal(t, KindDegenerate, KindOf(Degenerate("zero variance")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing portfolio")))
	assert.Equal(t, KindUnexpected, KindOf(fmt.Errorf("plain error")))
	assert.Equal(t, KindUnexpected, KindOf(New("boom")))
}

func TestWrapPreservesKind(t *testing.T) {
	inner := InsufficientData("too few observations")
	wrapped := Wrap(inner, "VaR estimation")

	assert.Equal(t, KindInsufficientData, KindOf(wrapped))
	assert.Equal(t, "VaR estimation: too few observations", wrapped.Error())
	assert.True(t, IsKind(wrapped, KindInsufficientData))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestRecoverable(t *testing.T) {
	assert.True(t, Recoverable(InsufficientData("x")))
	assert.True(t, Recoverable(InvalidInput("x")))
	assert.True(t, Recoverable(Degenerate("x")))
	assert.False(t, Recoverable(NotFound("x")))
	assert.False(t, Recoverable(New("x")))
	assert.False(t, Recoverable(fmt.Errorf("x")))
}
