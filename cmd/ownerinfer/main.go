// Command ownerinfer is a harness for exercising the ownership inference
// core (internal/ownership) in isolation against serialized IR fixtures. It
// is not a language compiler or runtime; it never lexes, parses, or
// executes anything.
package main

import (
	"fmt"
	"os"

	"github.com/siko-lang/ownerinfer/cmd/ownerinfer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
