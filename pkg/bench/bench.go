// Package bench 对比互斥锁计数器与 Actor 计数器的吞吐量
//
// 每个生产者执行 Ops/Producers 次操作，偶数次 Add、奇数次 Remove。
// Actor 版本的耗时包含等待邮箱排空的时间。
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lwmacct/251219-go-pkg-actor/pkg/actor"
	"github.com/lwmacct/251219-go-pkg-actor/pkg/buffer"
)

// Config 压测配置
type Config struct {
	Ops       int
	Producers int
	Warmup    int
	// System Actor 系统配置，nil 时使用默认配置
	System *actor.SystemConfig
}

// DefaultConfig 默认压测配置
func DefaultConfig() Config {
	return Config{
		Ops:       100000,
		Producers: 10,
		Warmup:    10000,
	}
}

func (c Config) validate() error {
	if c.Ops <= 0 {
		return fmt.Errorf("ops must be positive, got %d", c.Ops)
	}
	if c.Producers <= 0 {
		return fmt.Errorf("producers must be positive, got %d", c.Producers)
	}
	return nil
}

// Result 单次压测结果
type Result struct {
	Name    string
	Ops     int
	Elapsed time.Duration
	Final   int
}

// Throughput 每秒操作数
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// String 结果摘要
func (r Result) String() string {
	return fmt.Sprintf("%-12s ops=%d elapsed=%v throughput=%.2f ops/s final=%d",
		r.Name, r.Ops, r.Elapsed, r.Throughput(), r.Final)
}

// RunSynchronized 压测互斥锁实现
func RunSynchronized(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	warm := buffer.NewSynchronized(0)
	for i := 0; i < cfg.Warmup; i++ {
		warm.Add()
		warm.Remove()
	}

	buf := buffer.NewSynchronized(0)
	perProducer := cfg.Ops / cfg.Producers

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.Producers; p++ {
		g.Go(func() error {
			for j := 0; j < perProducer; j++ {
				if j%2 == 0 {
					buf.Add()
				} else {
					buf.Remove()
				}
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Name:    "synchronized",
		Ops:     perProducer * cfg.Producers,
		Elapsed: time.Since(start),
		Final:   buf.Get(),
	}, nil
}

// RunActor 压测 Actor 实现
func RunActor(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	sysCfg := actor.DefaultSystemConfig()
	if cfg.System != nil {
		copied := *cfg.System
		sysCfg = &copied
	}
	sysCfg.Name = "bench"

	sys, err := actor.NewSystemWithConfig(sysCfg)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := sys.Shutdown(); err != nil {
			sys.Logger().Warn("bench system shutdown", "error", err)
		}
	}()

	if cfg.Warmup > 0 {
		warm, err := sys.Register("warmup", buffer.New(0))
		if err != nil {
			return Result{}, err
		}
		for i := 0; i < cfg.Warmup; i++ {
			buffer.DoAdd(warm)
			buffer.DoRemove(warm)
		}
		if err := sys.AwaitQuiescence(ctx); err != nil {
			return Result{}, err
		}
	}

	ref, err := sys.Register("buffer", buffer.New(0))
	if err != nil {
		return Result{}, err
	}
	perProducer := cfg.Ops / cfg.Producers

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.Producers; p++ {
		g.Go(func() error {
			for j := 0; j < perProducer; j++ {
				if j%2 == 0 {
					buffer.DoAdd(ref)
				} else {
					buffer.DoRemove(ref)
				}
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := sys.AwaitQuiescence(ctx); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	final, err := buffer.DoGet(ref, time.Second)
	if err != nil {
		return Result{}, err
	}

	stats := sys.Stats()
	sys.Logger().Debug("bench finished",
		slog.Int64("messages", stats.TotalMessages),
		slog.Int64("processed", stats.ProcessedMsgs),
		slog.Int("workers", stats.Workers))

	return Result{
		Name:    "actor",
		Ops:     perProducer * cfg.Producers,
		Elapsed: elapsed,
		Final:   final,
	}, nil
}
