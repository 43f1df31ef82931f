package main

import (
	"os"

	"github.com/wonny/vcreview/backend/cmd/vcreview/commands"
)

// main is the entry point for the VCReview CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/vcreview [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
