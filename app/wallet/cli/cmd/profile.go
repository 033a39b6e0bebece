package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	displayName string
	username    string
	avatarURL   string
)

var profileCmd = &cobra.Command{
	Use:   "profile [address]",
	Short: "Print a creator profile, or save yours with --name",
	Args:  cobra.MaximumNArgs(1),
	Run:   profileRun,
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Build a shareable tip link for a creator",
	Run:   linkRun,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(linkCmd)
	profileCmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name to save.")
	profileCmd.Flags().StringVar(&username, "username", "", "Username to save.")
	profileCmd.Flags().StringVar(&avatarURL, "avatar", "", "Profile picture url to save.")
	linkCmd.Flags().StringVarP(&handle, "handle", "c", "", "Creator handle.")
	linkCmd.Flags().StringVarP(&to, "address", "t", "", "Creator address.")
	linkCmd.Flags().StringVarP(&amount, "amount", "v", "", "Default tip amount.")
	linkCmd.Flags().StringVar(&avatarURL, "avatar", "", "Profile picture url.")
}

func profileRun(cmd *cobra.Command, args []string) {
	if displayName == "" {
		if len(args) == 0 {
			log.Fatal("address required to query a profile")
		}

		if err := call(http.MethodGet, "/v1/profiles/"+args[0], nil); err != nil {
			log.Fatal(err)
		}
		return
	}

	p := struct {
		DisplayName string `json:"displayName"`
		Username    string `json:"username"`
		AvatarURL   string `json:"profilePictureUrl"`
	}{
		DisplayName: displayName,
		Username:    username,
		AvatarURL:   avatarURL,
	}

	if err := call(http.MethodPut, "/v1/profiles", p); err != nil {
		log.Fatal(err)
	}
}

func linkRun(cmd *cobra.Command, args []string) {
	l := struct {
		Creator string `json:"creator"`
		Address string `json:"address"`
		Amount  string `json:"amount"`
		Pfp     string `json:"pfp"`
	}{
		Creator: handle,
		Address: to,
		Amount:  amount,
		Pfp:     avatarURL,
	}

	if err := call(http.MethodPost, "/v1/links", l); err != nil {
		log.Fatal(err)
	}
}
