// Package cli wires the stockroom commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "stockroom",
	Short: "Inventory and order-processing service",
	Long: `stockroom is a small inventory service. It stores products and
orders and processes orders by applying product-type-specific stock and
notification rules to each order item.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./stockroom.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("stockroom")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("STOCKROOM")
	viper.AutomaticEnv()

	// Config file is optional; env and flags suffice.
	_ = viper.ReadInConfig()
}
