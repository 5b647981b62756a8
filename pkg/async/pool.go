package async

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"TrainingLog/config"
	"TrainingLog/pkg/ctxmeta"
	"TrainingLog/pkg/logger"

	"github.com/panjf2000/ants/v2"
)

var (
	global   *ants.Pool
	globalMu sync.RWMutex
	cfgCopy  config.AsyncConfig

	// propagator 从请求 ctx 中提取需要透传给异步任务的字段，默认只带元数据、不带取消
	propagator = ctxmeta.Detach
)

// ErrNotInitialized 表示协程池尚未初始化。
var ErrNotInitialized = errors.New("async pool not initialized")

// SetContextPropagator 替换上下文传递器，传 nil 恢复默认。
func SetContextPropagator(fn func(context.Context) context.Context) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if fn == nil {
		fn = ctxmeta.Detach
	}
	propagator = fn
}

// Build 根据配置创建协程池实例。
func Build(cfg config.AsyncConfig) (*ants.Pool, error) {
	opts := []ants.Option{
		ants.WithMaxBlockingTasks(cfg.MaxBlockingTasks),
		ants.WithExpiryDuration(cfg.ExpiryDuration),
		ants.WithPanicHandler(func(p any) {
			logger.Error(context.Background(), "async task panic",
				logger.Any("panic", p),
				logger.String("stack", string(debug.Stack())),
			)
		}),
	}
	if cfg.Nonblocking {
		opts = append(opts, ants.WithNonblocking(true))
	}
	return ants.NewPool(cfg.PoolSize, opts...)
}

// Init 初始化全局协程池（进程启动时调用一次）。
func Init(cfg config.AsyncConfig) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil
	}
	p, err := Build(cfg)
	if err != nil {
		return err
	}
	global = p
	cfgCopy = cfg
	return nil
}

// Submit 将任务投递到全局协程池。
func Submit(task func()) error {
	globalMu.RLock()
	p := global
	globalMu.RUnlock()
	if p == nil {
		return ErrNotInitialized
	}
	return p.Submit(task)
}

// Release 优雅释放协程池，等待已提交的任务执行完。
func Release() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return nil
	}
	var err error
	if cfgCopy.ReleaseTimeout > 0 {
		err = global.ReleaseTimeout(cfgCopy.ReleaseTimeout)
	} else {
		global.Release()
	}
	global = nil
	return err
}

// RunSafe 执行尽力而为的旁路任务：超时控制、panic 兜底、透传 trace。
// 协程池未初始化（测试、命令行工具）时在当前 goroutine 同步执行。
func RunSafe(ctx context.Context, task func(ctx context.Context), timeout time.Duration) {
	if task == nil {
		return
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	if ctx == nil {
		ctx = context.Background()
	}

	globalMu.RLock()
	propagate := propagator
	globalMu.RUnlock()

	runCtx, cancel := context.WithTimeout(propagate(ctx), timeout)
	wrap := func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Error(runCtx, "async task panic",
					logger.Any("panic", r),
					logger.String("stack", string(debug.Stack())),
				)
			}
		}()

		task(runCtx)

		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			logger.Warn(runCtx, "async task timeout", logger.Duration("timeout", timeout))
		}
	}

	err := Submit(wrap)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotInitialized):
		wrap()
	default:
		cancel()
		logger.Error(runCtx, "async submit failed",
			logger.ErrorField("error", err),
			logger.Duration("timeout", timeout),
		)
	}
}
