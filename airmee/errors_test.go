package airmee_test

import (
	"errors"
	"testing"

	"github.com/airmee/sdk-go/airmee"
	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := &airmee.Error{Kind: airmee.KindUnknownPlace, Message: "Unrecognised place_id", StatusCode: 404}

	assert.ErrorIs(t, err, airmee.ErrUnknownPlace)
	assert.NotErrorIs(t, err, airmee.ErrAuthorization)
	assert.NotErrorIs(t, err, airmee.ErrServer)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &airmee.Error{Kind: airmee.KindServerError, Message: cause.Error(), StatusCode: 500, Cause: cause}

	assert.ErrorIs(t, err, airmee.ErrServer)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestError_String(t *testing.T) {
	err := &airmee.Error{Kind: airmee.KindAuthorization, Message: "Unauthorized"}
	assert.Equal(t, "airmee: authorization: Unauthorized", err.Error())

	bare := &airmee.Error{Kind: airmee.KindServerError}
	assert.Equal(t, "airmee: server_error", bare.Error())
}
