// SPDX-License-Identifier: MIT

// Command pibble inspects, transforms, summarizes and predicts from
// posterior samples of Multinomial Logistic-Normal regressions.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pibble/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitStatus(err))
	}
}
