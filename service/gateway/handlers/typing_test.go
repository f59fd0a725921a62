package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsumonkyi-hmk/ayar-farm-sub000/service/gateway"
	"github.com/hsumonkyi-hmk/ayar-farm-sub000/tools/errs"
)

func TestTypingRejectsMissingRoom(t *testing.T) {
	h := NewTypingHandler()

	for _, data := range []string{`{}`, `not-json`} {
		err := h.Handle(nil, nil, &gateway.Frame{Event: gateway.EventTyping, Data: []byte(data)})
		require.Error(t, err)
		assert.True(t, errs.ErrBadFrame.Is(err))
		assert.Equal(t, errs.BadFrameError, errs.Code(err))
	}
}
