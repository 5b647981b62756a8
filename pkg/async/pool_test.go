package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"TrainingLog/config"
	"TrainingLog/pkg/ctxmeta"
	"TrainingLog/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunSafePropagatesContextAndRecovers(t *testing.T) {
	logger.ReplaceGlobal(zap.NewNop())
	require.NoError(t, Init(config.DefaultAsyncConfig()))
	t.Cleanup(func() { _ = Release() })

	parent, cancel := context.WithCancel(ctxmeta.WithTraceID(context.Background(), "t-async"))
	cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	var gotTrace string
	var gotErr error
	RunSafe(parent, func(ctx context.Context) {
		defer wg.Done()
		gotTrace = ctxmeta.TraceID(ctx)
		gotErr = ctx.Err()
	}, time.Second)
	RunSafe(parent, func(ctx context.Context) {
		defer wg.Done()
		panic("boom")
	}, time.Second)
	wg.Wait()

	// 请求已取消，异步任务仍带着 trace 正常执行
	assert.Equal(t, "t-async", gotTrace)
	assert.NoError(t, gotErr)
}

func TestRunSafeWithoutPoolRunsInline(t *testing.T) {
	logger.ReplaceGlobal(zap.NewNop())
	require.NoError(t, Release())

	ran := false
	RunSafe(ctxmeta.WithUserID(context.Background(), "u1"), func(ctx context.Context) {
		ran = true
		assert.Equal(t, "u1", ctxmeta.UserID(ctx))
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
	}, time.Second)
	assert.True(t, ran)

	assert.NotPanics(t, func() {
		RunSafe(context.Background(), func(context.Context) { panic("boom") }, time.Second)
	})
}

func TestSetContextPropagator(t *testing.T) {
	logger.ReplaceGlobal(zap.NewNop())
	require.NoError(t, Release())
	SetContextPropagator(func(context.Context) context.Context {
		return ctxmeta.WithTraceID(context.Background(), "fixed")
	})
	t.Cleanup(func() { SetContextPropagator(nil) })

	var got string
	RunSafe(context.Background(), func(ctx context.Context) { got = ctxmeta.TraceID(ctx) }, time.Second)
	assert.Equal(t, "fixed", got)
}

func TestSubmitWithoutInit(t *testing.T) {
	require.NoError(t, Release())
	assert.ErrorIs(t, Submit(func() {}), ErrNotInitialized)
}
