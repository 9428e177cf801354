package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "toggle-block",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"block_id": "b1"},
	})
	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=toggle-block")
	assert.Contains(t, out, "block_id=b1")
	assert.Contains(t, out, "level=INFO")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "stop-task", Err: errors.New("disk full")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="disk full"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}).(*recordingObserver))
}

func TestLogUseCaseObserver_FieldsInKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	observeUseCase(context.Background(), obs, "add-block", time.Now(),
		map[string]any{"title": "Gym", "day": 3, "block_id": "b9"}, nil)

	out := buf.String()
	assert.Contains(t, out, "component=service")
	assert.Contains(t, out, "success=true")
	blockAt := bytes.Index(buf.Bytes(), []byte("block_id=b9"))
	dayAt := bytes.Index(buf.Bytes(), []byte("day=3"))
	titleAt := bytes.Index(buf.Bytes(), []byte("title=Gym"))
	assert.True(t, blockAt >= 0 && blockAt < dayAt && dayAt < titleAt, out)
}
