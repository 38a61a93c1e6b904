package arbor_test

import (
	"fmt"

	"github.com/aretw0/arbor"
)

func Example() {
	res, err := arbor.Load(`
{id: actor_01, type: Actor, name: Billy Bob, rootnode: {id: sel_01, type: Selector, childnodes: [
  {id: l1, type: LeafAction, action: Fail},
  {id: inv, type: Invert, decoratee: {id: l2, type: LeafAction, action: Fail}}]}}`)
	if err != nil {
		fmt.Println("load failed:", err)
		return
	}

	actor, _ := res.Actor("Billy Bob")
	for i := 0; i < 2; i++ {
		status, _ := actor.Execute()
		fmt.Println(status)
	}
	// Output:
	// ready
	// success
}
