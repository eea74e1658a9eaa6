package main

import (
	"fmt"
	"os"

	"github.com/hamed0406/netmon/internal/cli"
)

// version is set at build time: -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
