package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("thing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindInternal, KindOf(Internal(stderrors.New("boom"))))

	// Anything unclassified is internal.
	assert.Equal(t, KindInternal, KindOf(stderrors.New("plain")))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("hospital"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestUnauthenticatedFixedMessage(t *testing.T) {
	err := Unauthenticated(stderrors.New("password mismatch"))
	assert.Equal(t, "could not validate credentials", err.Message)

	// The cause stays wrapped for logging but is not the message.
	assert.ErrorContains(t, err, "password mismatch")
}

func TestNotFoundMessage(t *testing.T) {
	assert.EqualError(t, NotFound("patient"), "patient not found")
}

func TestIsMatchesByKind(t *testing.T) {
	assert.ErrorIs(t, NotFound("a"), NotFound("b"))
	assert.NotErrorIs(t, NotFound("a"), Forbidden("b"))
}
