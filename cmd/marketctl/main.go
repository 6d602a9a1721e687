// Package main is marketctl, an operator CLI over the market hours engine.
package main

import (
	"os"
	"time"
)

func main() {
	if err := newRootCmd(os.Stdout, time.Now).Execute(); err != nil {
		os.Exit(1)
	}
}
