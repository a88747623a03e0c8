// Promptshear - shrink LLM prompts without changing what they mean
package main

import (
	"os"

	"github.com/promptshear/promptshear/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
