package abrerr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKindMatches(t *testing.T) {
	err := NewParseError("add", "A ∧", "operator missing operand")
	assert.True(t, IsKind(err, KindParseError))
	assert.False(t, IsKind(err, KindOverbudget))
}

func TestIsKindThroughWrap(t *testing.T) {
	err := NewOverbudget("contract", "A ∨ B")
	wrapped := fmt.Errorf("while contracting: %w", err)
	assert.True(t, IsKind(wrapped, KindOverbudget))
}

func TestIsKindFalseForPlainError(t *testing.T) {
	assert.False(t, IsKind(fmt.Errorf("plain"), KindParseError))
	assert.False(t, IsKind(nil, KindParseError))
}

func TestErrorMessageCarriesContext(t *testing.T) {
	err := NewInvalidSelector("contract", "A", "bogus")
	msg := err.Error()
	assert.Contains(t, msg, "contract")
	assert.Contains(t, msg, "A")
	assert.Contains(t, msg, "bogus")
}
