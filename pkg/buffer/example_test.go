package buffer_test

import (
	"fmt"
	"time"

	"github.com/lwmacct/251219-go-pkg-actor/pkg/actor"
	"github.com/lwmacct/251219-go-pkg-actor/pkg/buffer"
)

// Example 演示 Tell 与 Ask 的组合
func Example() {
	sys := actor.NewSystem("buffer-example")
	defer sys.Shutdown()

	ref, _ := sys.Register("buffer", buffer.New(1))

	buffer.DoAdd(ref)
	buffer.DoRemove(ref)

	n, err := buffer.DoGet(ref, time.Second)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Current num:", n)

	// Output:
	// Current num: 1
}
