package actor

import (
	"context"
	"reflect"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 通用请求-回复辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// AskAs 向 Actor 发送请求并等待指定类型的回复
//
// 用法示例:
//
//	type GetStatus struct{}
//
//	status, err := actor.AskAs[*Status](ref, GetStatus{}, 5*time.Second)
func AskAs[T any](ref *Ref, payload any, timeout time.Duration) (T, error) {
	return AskContext[T](context.Background(), ref, payload, timeout)
}

// AskContext 带 context 的请求-回复
// ctx 先结束时返回 ctx.Err()；timeout 语义同 Ref.Ask
func AskContext[T any](ctx context.Context, ref *Ref, payload any, timeout time.Duration) (T, error) {
	var zero T

	v, err := ref.Ask(payload, nil, timeout).Await(ctx)
	if err != nil {
		return zero, err
	}

	result, ok := v.(T)
	if !ok {
		return zero, &UnexpectedReply{
			Target: ref.Name(),
			Want:   reflect.TypeFor[T]().String(),
			Got:    v,
		}
	}
	return result, nil
}
