package pyrite_test

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/pyrite"
)

func Example() {
	source := "x = 1  # the answer\ny = x + 1\n"
	tree, err := pyrite.Parse(context.Background(), source)
	if err != nil {
		panic(err)
	}
	out, err := tree.Render()
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// x = 1  # the answer
	// y = x + 1
}

func ExampleTree_InlineName() {
	source := "TIMEOUT = 30\nconnect(host, timeout=TIMEOUT)\n"
	tree, err := pyrite.Parse(context.Background(), source)
	if err != nil {
		panic(err)
	}
	if err := tree.InlineName("TIMEOUT"); err != nil {
		panic(err)
	}
	out, err := tree.Render()
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// connect(host, timeout=30)
}
