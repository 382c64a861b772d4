package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus_ByKind(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusUnprocessableEntity,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindUpstream:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		require.Equal(t, want, New(kind, "X", "x").HTTPStatus(), kind)
	}
}

func TestWithStatus_DoesNotMutateOriginal(t *testing.T) {
	base := Validation("FILE_TOO_LARGE", "too large", nil)
	big := base.WithStatus(http.StatusRequestEntityTooLarge)

	require.Equal(t, http.StatusUnprocessableEntity, base.HTTPStatus())
	require.Equal(t, http.StatusRequestEntityTooLarge, big.HTTPStatus())
}

func TestAs_FindsWrapped(t *testing.T) {
	sentinel := NotFound("CATEGORY_NOT_FOUND", "Category not found.")
	err := fmt.Errorf("category.get: %w", sentinel)

	ae, ok := As(err)
	require.True(t, ok)
	require.Equal(t, "CATEGORY_NOT_FOUND", ae.Code)
	require.ErrorIs(t, err, sentinel)

	_, ok = As(errors.New("plain"))
	require.False(t, ok)
}

func TestUpstream_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Upstream("FILE_SAVE_FAILED", "Could not store file.", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "disk full")
}

func TestIs_MatchesByKindAndCode(t *testing.T) {
	sentinel := Validation("UNSUPPORTED_FILE_TYPE", "File type not allowed.", nil)
	reworded := *sentinel
	reworded.Message = "File type \".txt\" not allowed."

	require.ErrorIs(t, fmt.Errorf("upload: %w", &reworded), sentinel)
	require.NotErrorIs(t, New(KindNotFound, "UNSUPPORTED_FILE_TYPE", "x"), sentinel)
}
