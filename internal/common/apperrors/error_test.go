package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorDerivation(t *testing.T) {
	ErrBase := New("base error")
	assert.Equal(t, "base error", ErrBase.Error())
	assert.ErrorIs(t, ErrBase, ErrBase)

	ErrChild := ErrBase.New("child error")
	assert.Equal(t, "child error", ErrChild.Error())
	assert.ErrorIs(t, ErrChild, ErrBase)

	ErrMsg := ErrChild.Msg("something specific went wrong")
	assert.Equal(t, "something specific went wrong", ErrMsg.Error())
	assert.ErrorIs(t, ErrMsg, ErrChild)
	assert.ErrorIs(t, ErrMsg, ErrBase)
}

func TestErrorWrapping(t *testing.T) {
	ErrBase := New("base error")
	ErrChild := ErrBase.New("child error")

	wrapped := errors.New("io failure")
	err := ErrChild.Err(wrapped)
	assert.Equal(t, "child error", err.Error())
	assert.ErrorIs(t, err, ErrBase)
	assert.ErrorIs(t, err, wrapped)

	goErr := fmt.Errorf("plain error")
	err = ErrChild.MsgErr("msg", goErr)
	assert.Equal(t, "msg", err.Error())
	assert.ErrorIs(t, err, ErrChild)
	assert.ErrorIs(t, err, goErr)
	assert.Len(t, err.UnwrapAll(), 2)
}

func TestStatusCode(t *testing.T) {
	ErrBase := New("base error").SetStatusCode(http.StatusInternalServerError)
	assert.Equal(t, http.StatusInternalServerError, ErrBase.StatusCode())

	// Derived errors inherit the code until it is overridden.
	ErrChild := ErrBase.New("child error")
	assert.Equal(t, http.StatusInternalServerError, ErrChild.StatusCode())

	ErrNotFound := ErrBase.New("not found").SetStatusCode(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, ErrNotFound.StatusCode())
	assert.ErrorIs(t, ErrNotFound, ErrBase)
}

func TestErrorAll(t *testing.T) {
	ErrBase := New("base error").SetExpandError(true)
	err := ErrBase.MsgErr("request failed", fmt.Errorf("dial tcp: refused"))
	assert.Equal(t, "request failed", err.Error())
	assert.Equal(t, "request failed; base error; dial tcp: refused", err.ErrorAll())

	compact := err.SetExpandError(false)
	assert.Equal(t, "request failed", compact.ErrorAll())
}
