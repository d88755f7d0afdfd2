// Command benchreporter aggregates benchmark runs and compares them against baselines.
package main

import (
	"log"
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Printf("benchreporter: %v", err)
		os.Exit(1)
	}
}
