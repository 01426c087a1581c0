package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/cfged/cmd"
	"github.com/oakwood-commons/cfged/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		if !cmd.IsInvalid(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		exitCode = 1
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
