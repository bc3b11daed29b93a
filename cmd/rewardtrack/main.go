package main

import (
	"os"

	"rewardtrack/cmd/rewardtrack/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
