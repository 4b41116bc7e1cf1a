// Package buffer 是运行在 actor 运行时上的参考 Actor：一个下限为 0 的计数器
//
// 计数只在 Actor 的 Receive 中修改，不需要任何锁。消息种类是封闭的：
// [Add]、[Remove]、[Get]，其它 payload 会被报告为 [actor.UnknownMessage] 故障。
//
//	sys := actor.NewSystem("app")
//	ref, _ := sys.Register("buffer", buffer.New(1))
//	ref.Tell(buffer.Add{}, nil)
//	n, _ := buffer.DoGet(ref, time.Second)
//
// [Synchronized] 是使用互斥锁的等价实现，用于吞吐量对比。
package buffer
