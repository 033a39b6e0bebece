package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	to      string
	amount  string
	message string
	handle  string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a tip through the node's wallet",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the creator.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "", "Amount to tip.")
	sendCmd.Flags().StringVarP(&message, "message", "m", "", "Message to send with the tip.")
	sendCmd.Flags().StringVarP(&handle, "handle", "c", "", "Creator handle from a tip link.")
}

func sendRun(cmd *cobra.Command, args []string) {
	tip := struct {
		To      string `json:"to"`
		Amount  string `json:"amount"`
		Message string `json:"message"`
		Handle  string `json:"handle,omitempty"`
		Link    bool   `json:"link"`
	}{
		To:      to,
		Amount:  amount,
		Message: message,
		Handle:  handle,
		Link:    handle != "",
	}

	if err := call(http.MethodPost, "/v1/tips/send", tip); err != nil {
		log.Fatal(err)
	}
}
