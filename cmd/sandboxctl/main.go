// Sandboxctl inspects build descriptors and the runtime catalogue offline.
// It needs neither the API server nor a container engine.
//
// Usage:
//
//	sandboxctl runtimes
//	sandboxctl lint ./Dockerfile
//	sandboxctl render python
//	sandboxctl env ./Dockerfile --base PATH=/usr/bin
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
