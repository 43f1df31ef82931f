package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcreview",
	Short: "VCReview - 한국 벤처펀드 카탈로그 & 딜 매칭",
	Long: `VCReview Unified CLI

KVIC 공시 기반 벤처펀드 카탈로그와 딜-펀드 매칭 엔진.

Usage:
  go run ./cmd/vcreview [command]

Examples:
  go run ./cmd/vcreview api
  go run ./cmd/vcreview collect
  go run ./cmd/vcreview match --sectors "AI,핀테크" --stage seed
  go run ./cmd/vcreview seed --file data/funds.json`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
