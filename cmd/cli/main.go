package main

import (
	"fmt"
	"os"

	"github.com/ejardin/cmd/cli/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var apiClient *client.APIClient

var rootCmd = &cobra.Command{
	Use:   "ejardin",
	Short: "E-Jardin CLI - storefront administration",
	Long: `E-Jardin CLI is a command-line tool for administering the E-Jardin
storefront: browsing the catalog, managing orders and scheduling reports.`,
}

func init() {
	viper.SetConfigName("ejardin-cli")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config")
	viper.AddConfigPath(".")
	viper.SetDefault("api_url", "http://localhost:8080")
	_ = viper.ReadInConfig()

	apiClient = client.NewAPIClient(viper.GetString("api_url"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
