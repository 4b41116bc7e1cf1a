// Package actor 提供轻量级 Actor 运行时
//
// Actor 模式是一种并发计算模型，每个 Actor 是独立的计算单元：
// • 拥有私有状态（无需锁保护）
// • 通过消息邮箱（mailbox）接收消息
// • 消息处理串行化（同一 Actor 的行为永不并发执行）
// • 多个 Actor 复用固定大小的 worker 池，而不是每个 Actor 一个 goroutine
//
// # 核心组件
//
// [System] 是注册表与调度器的所有者：
//
//	sys := actor.NewSystem("my-system")
//	defer sys.Shutdown()
//
// [Actor] 接口定义消息处理行为，[ActorFunc] 提供函数式快捷方式。
//
// [Ref] 是 Actor 的句柄。[Ref.Tell] 异步发送（fire-and-forget），
// [Ref.Ask] 返回一个 [future.Future]，既可以阻塞等待也可以注册回调。
//
// [Dispatcher] 把“有待处理消息的 Actor”映射到 worker 上。
// [PoolDispatcher] 的任务队列是无界的：过载时队列会持续增长，调用方需自行限流。
//
// # 调度不变量
//
// 每个 Actor 持有一个原子 scheduled 标记：邮箱由空变为非空且标记未被占用时才提交调度；
// 处理轮次排空邮箱后清除标记并再次检查邮箱，避免丢消息，也避免两个轮次并发执行。
//
// # 错误处理
//
// Receive 返回的错误或 panic 都会被包装为 [BehaviorFault]：
// 先交给 Actor 自身的 [ErrorHandler]，再通过 [System.ReportFailure] 上报。
// 邮箱不会停止，后续消息继续处理。若出错的消息带有回复槽，Ask 调用方会收到该错误。
//
// # 注意事项
//
// 1. 消息不可变，发送后不要修改 payload
// 2. Receive 中不要阻塞等待另一个 Actor 的 Ask，会占住 worker，worker 耗尽时整个池饿死
// 3. 退出前调用 [System.Shutdown]，它会等待所有在途消息处理完毕再停止 worker
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package actor
