package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var spotlight bool

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the creators who received the most tips",
	Run:   leaderboardRun,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the stats and recent tips for your wallet",
	Run:   statsRun,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <address>",
	Short: "Print the tips received by a creator",
	Args:  cobra.ExactArgs(1),
	Run:   dashboardRun,
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dashboardCmd)
	leaderboardCmd.Flags().BoolVarP(&spotlight, "spotlight", "s", false, "Only show the top three.")
}

func leaderboardRun(cmd *cobra.Command, args []string) {
	path := "/v1/leaderboard"
	if spotlight {
		path += "/spotlight"
	}

	if err := call(http.MethodGet, path, nil); err != nil {
		log.Fatal(err)
	}
}

func statsRun(cmd *cobra.Command, args []string) {
	if err := call(http.MethodGet, "/v1/tips/stats", nil); err != nil {
		log.Fatal(err)
	}

	if err := call(http.MethodGet, "/v1/tips/recent", nil); err != nil {
		log.Fatal(err)
	}
}

func dashboardRun(cmd *cobra.Command, args []string) {
	if err := call(http.MethodGet, "/v1/creators/"+args[0]+"/dashboard", nil); err != nil {
		log.Fatal(err)
	}
}
