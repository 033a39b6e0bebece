package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var watchLeaderboard bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change notifications from the node",
	Run:   watchRun,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&watchLeaderboard, "leaderboard", "l", false, "Stream the leaderboard instead of raw keys.")
}

func watchRun(cmd *cobra.Command, args []string) {
	path := "/v1/events"
	if watchLeaderboard {
		path = "/v1/leaderboard/stream"
	}

	wsURL := "ws" + strings.TrimPrefix(url, "http") + path

	c, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(msg))
	}
}
