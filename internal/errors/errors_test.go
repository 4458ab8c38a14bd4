package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:        http.StatusNotFound,
		KindAuthorization:   http.StatusForbidden,
		KindInvalidArgument: http.StatusBadRequest,
		KindConflict:        http.StatusConflict,
		KindUnavailable:     http.StatusServiceUnavailable,
		KindUnknown:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), string(kind))
	}
}

func TestIsMatchesSentinelThroughWrapping(t *testing.T) {
	err := fmt.Errorf("submit review: %w", Conflict("submission %s changed", "abc"))

	assert.True(t, stderrors.Is(err, ErrConflict))
	assert.False(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Unavailable(cause, "load submission")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "load submission", Message(err))
	assert.Equal(t, "load submission: connection reset", err.Error())
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(stderrors.New("boom")))
	assert.Equal(t, "internal server error", Message(stderrors.New("boom")))
}
