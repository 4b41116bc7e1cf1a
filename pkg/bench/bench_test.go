package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251219-go-pkg-actor/pkg/actor"
)

func smallConfig() Config {
	sys := actor.DefaultSystemConfig()
	sys.Workers = 2
	return Config{Ops: 2000, Producers: 4, Warmup: 100, System: sys}
}

func TestRunSynchronized(t *testing.T) {
	res, err := RunSynchronized(context.Background(), smallConfig())
	require.NoError(t, err)

	assert.Equal(t, "synchronized", res.Name)
	assert.Equal(t, 2000, res.Ops)
	// 每个生产者先 Add 后 Remove 交替进行，Remove 永远不会遇到 0，结果必为 0
	assert.Equal(t, 0, res.Final)
	assert.Greater(t, res.Throughput(), 0.0)
}

func TestRunActor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := RunActor(ctx, smallConfig())
	require.NoError(t, err)

	assert.Equal(t, "actor", res.Name)
	assert.Equal(t, 2000, res.Ops)
	// 依赖每个生产者内部的 FIFO 顺序
	assert.Equal(t, 0, res.Final)
	assert.Contains(t, res.String(), "actor")
}

func TestInvalidConfig(t *testing.T) {
	_, err := RunActor(context.Background(), Config{Ops: 0, Producers: 1})
	assert.Error(t, err)

	_, err = RunSynchronized(context.Background(), Config{Ops: 10, Producers: 0})
	assert.Error(t, err)
}

func TestResultThroughputZeroElapsed(t *testing.T) {
	assert.Equal(t, 0.0, Result{Ops: 10}.Throughput())
}
