// Command metsearch is a terminal client for the museum collection
// catalog: it searches the catalog and streams object metadata as the
// fetch scheduler resolves it, one paced page at a time.
package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/metsearch/collection-client/pkg/catalog"
	"github.com/metsearch/collection-client/pkg/logging"
)

var version = "dev"

// Global flags.
var (
	logLevel  string
	logPretty bool
	noColor   bool
	baseURL   string
	userAgent string
	redisAddr string
)

var rootCmd = &cobra.Command{
	Use:           "metsearch",
	Short:         "Search the museum collection catalog from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(logLevel),
			Pretty: logPretty,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the metsearch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("metsearch version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", true, "human-readable log output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the collection API base URL")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "metsearch/"+version, "User-Agent header")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address enabling the response cache, e.g. localhost:6379")

	rootCmd.AddCommand(searchCmd, departmentsCmd, versionCmd)
}

// newClient builds the catalog client from the global flags.
func newClient() (*catalog.Client, error) {
	cfg := catalog.DefaultConfig(userAgent)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if redisAddr != "" {
		cfg.Redis = redis.NewClient(&redis.Options{Addr: redisAddr})
	}
	return catalog.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
