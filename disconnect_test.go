package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	err    error
	called bool
	ctxErr error
}

func (f *fakeClient) Disconnect(ctx context.Context) error {
	f.called = true
	f.ctxErr = ctx.Err()
	return f.err
}

func TestDisconnect_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	client := &fakeClient{err: errors.New("connection reset")}

	disconnect(client, logger)

	assert.True(t, client.called)
	assert.NoError(t, client.ctxErr)
	assert.Contains(t, buf.String(), `"msg":"mongo disconnect failed"`)
	assert.Contains(t, buf.String(), "connection reset")
}

func TestDisconnect_QuietOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	client := &fakeClient{}

	disconnect(client, slog.New(slog.NewJSONHandler(&buf, nil)))

	assert.True(t, client.called)
	assert.Empty(t, buf.String())
}
