package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/secreport/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "secreport",
	Short: "Aggregates security scanner output into one normalized report",
	Long: `Secreport collects the output documents of multiple security scanners
(SARIF tools, npm audit, Trivy) from a directory, normalizes every finding
onto one severity scale, and renders an aggregated report for humans
(Markdown) or automation (JSON).`,
}

var (
	inputDir   string
	configFile string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputDir, "input-dir", "i", "./security-reports", "Directory containing scanner output documents")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile, "Path to the repository context config file")
}
