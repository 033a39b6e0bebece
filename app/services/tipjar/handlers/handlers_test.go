package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/tipjar/app/services/tipjar/handlers"
	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/business/web/errs"
	"github.com/ardanlabs/tipjar/foundation/events"
	"github.com/ardanlabs/tipjar/foundation/tipjar/aggregate"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage/memory"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	hexKey  = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	creator = "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"
)

type tests struct {
	app   http.Handler
	evts  *events.Events
	state *state.State
}

func newTests(t *testing.T) tests {
	pk, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the key: %v", failed, err)
	}

	evts := events.New()

	st, err := state.New(state.Config{
		Storage:        memory.New(),
		Wallet:         wallet.NewLocal(pk),
		ValidAddress:   wallet.HexAddress,
		Decimals:       9,
		ConfirmTimeout: time.Second,
		Notify:         evts.Send,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	v, err := validate.New(wallet.HexAddress)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the validator: %v", failed, err)
	}

	app, err := handlers.PublicMux(handlers.MuxConfig{
		Shutdown:   make(chan os.Signal, 1),
		Log:        zap.NewNop().Sugar(),
		State:      st,
		Validate:   v,
		Evts:       evts,
		CorsOrigin: "*",
		LinkBase:   "https://tipjar.example.com",
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the mux: %v", failed, err)
	}

	return tests{app: app, evts: evts, state: st}
}

func (tt tests) do(method string, path string, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	tt.app.ServeHTTP(w, r)
	return w
}

// =============================================================================

func TestTips(t *testing.T) {
	tt := newTests(t)

	t.Log("Given the need to send tips and read the leaderboard over the api.")
	{
		t.Logf("\tTest 0:\tWhen sending a valid tip.")
		{
			ch := tt.evts.Acquire("test")

			w := tt.do(http.MethodPost, "/v1/tips/send", `{"to":"`+creator+`","amount":"0.5","message":"gm"}`)
			if w.Code != http.StatusCreated {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 201 for the response: got %d %s", failed, w.Code, w.Body)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 201 for the response.", success)

			var got struct {
				Tip database.TipRecord `json:"tip"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil || got.Tip.Handle != "Direct Tip" {
				t.Fatalf("\t%s\tTest 0:\tShould return the recorded tip: got %+v, %v", failed, got, err)
			}
			t.Logf("\t%s\tTest 0:\tShould return the recorded tip.", success)

			select {
			case key := <-ch:
				if key != database.GlobalKey {
					t.Fatalf("\t%s\tTest 0:\tShould notify subscribers of the global key: got %q", failed, key)
				}
			default:
				t.Fatalf("\t%s\tTest 0:\tShould notify subscribers of the global key.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould notify subscribers of the global key.", success)
			tt.evts.Release("test")
		}

		t.Logf("\tTest 1:\tWhen reading the leaderboard.")
		{
			w := tt.do(http.MethodGet, "/v1/leaderboard", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 1:\tShould receive a status code of 200 for the response: got %d", failed, w.Code)
			}

			if body := w.Body.String(); !strings.Contains(body, `"totalAmount":"0.5"`) {
				t.Fatalf("\t%s\tTest 1:\tShould encode the total as an exact decimal string: got %s", failed, body)
			}
			t.Logf("\t%s\tTest 1:\tShould encode the total as an exact decimal string.", success)

			var board []aggregate.Entry
			if err := json.NewDecoder(w.Body).Decode(&board); err != nil || len(board) != 1 || board[0].Address != creator {
				t.Fatalf("\t%s\tTest 1:\tShould list the creator: got %+v, %v", failed, board, err)
			}
			t.Logf("\t%s\tTest 1:\tShould list the creator.", success)

			if board[0].Handle != aggregate.PlaceholderHandle(creator, 4) {
				t.Fatalf("\t%s\tTest 1:\tShould use the placeholder handle for a direct tip: got %q", failed, board[0].Handle)
			}
			t.Logf("\t%s\tTest 1:\tShould use the placeholder handle for a direct tip.", success)
		}

		t.Logf("\tTest 2:\tWhen sending an invalid tip.")
		{
			w := tt.do(http.MethodPost, "/v1/tips/send", `{"to":"nope","amount":"1"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 2:\tShould receive a status code of 400 for the response: got %d", failed, w.Code)
			}
			t.Logf("\t%s\tTest 2:\tShould receive a status code of 400 for the response.", success)

			var er errs.Response
			if err := json.NewDecoder(w.Body).Decode(&er); err != nil || er.Fields["to"] == "" {
				t.Fatalf("\t%s\tTest 2:\tShould report the failing field: got %+v, %v", failed, er, err)
			}
			t.Logf("\t%s\tTest 2:\tShould report the failing field.", success)

			w = tt.do(http.MethodPost, "/v1/tips/send", `{"to":"`+creator+`","amount":"0"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 2:\tShould reject a zero amount: got %d", failed, w.Code)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a zero amount.", success)
		}
	}
}

func TestProfiles(t *testing.T) {
	tt := newTests(t)
	address, _ := tt.state.WalletStatus()

	t.Log("Given the need to manage profiles over the api.")
	{
		t.Logf("\tTest 0:\tWhen the profile does not exist.")
		{
			w := tt.do(http.MethodGet, "/v1/profiles/"+address, "")
			if w.Code != http.StatusNotFound {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 404 for the response: got %d", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 404 for the response.", success)
		}

		t.Logf("\tTest 1:\tWhen saving a profile.")
		{
			w := tt.do(http.MethodPut, "/v1/profiles", `{"displayName":"Alice","username":"alice"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 1:\tShould receive a status code of 200 for the response: got %d %s", failed, w.Code, w.Body)
			}
			t.Logf("\t%s\tTest 1:\tShould receive a status code of 200 for the response.", success)

			w = tt.do(http.MethodGet, "/v1/profiles/"+address, "")

			var p database.CreatorProfile
			if err := json.NewDecoder(w.Body).Decode(&p); err != nil || p.DisplayName != "Alice" || p.Address != address {
				t.Fatalf("\t%s\tTest 1:\tShould read back the saved profile: got %+v, %v", failed, p, err)
			}
			t.Logf("\t%s\tTest 1:\tShould read back the saved profile.", success)
		}

		t.Logf("\tTest 2:\tWhen saving a blank display name.")
		{
			w := tt.do(http.MethodPut, "/v1/profiles", `{"displayName":"","username":"bob"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 2:\tShould receive a status code of 400 for the response: got %d", failed, w.Code)
			}
			t.Logf("\t%s\tTest 2:\tShould receive a status code of 400 for the response.", success)
		}
	}
}

func TestLeaderboardStream(t *testing.T) {
	tt := newTests(t)
	address, _ := tt.state.WalletStatus()

	srv := httptest.NewServer(tt.app)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/leaderboard/stream"

	t.Log("Given the need to stream the leaderboard over a web socket.")
	{
		c, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to connect to the stream: %v", failed, err)
		}
		defer c.Close()
		c.SetReadDeadline(time.Now().Add(5 * time.Second))

		t.Logf("\tTest 0:\tWhen the client connects.")
		{
			var board []aggregate.Entry
			if err := c.ReadJSON(&board); err != nil || len(board) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould push the empty leaderboard: got %+v, %v", failed, board, err)
			}
			t.Logf("\t%s\tTest 0:\tShould push the empty leaderboard.", success)
		}

		t.Logf("\tTest 1:\tWhen a tip is recorded.")
		{
			if _, err := tt.state.SendTip(context.Background(), state.TipRequest{To: address, Amount: "1"}); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to send a tip: %v", failed, err)
			}

			var board []aggregate.Entry
			if err := c.ReadJSON(&board); err != nil || len(board) != 1 || board[0].Address != address {
				t.Fatalf("\t%s\tTest 1:\tShould push the new leaderboard: got %+v, %v", failed, board, err)
			}
			t.Logf("\t%s\tTest 1:\tShould push the new leaderboard.", success)

			if board[0].Handle != aggregate.PlaceholderHandle(address, 4) {
				t.Fatalf("\t%s\tTest 1:\tShould use the placeholder handle: got %q", failed, board[0].Handle)
			}
			t.Logf("\t%s\tTest 1:\tShould use the placeholder handle.", success)
		}

		t.Logf("\tTest 2:\tWhen the creator saves a profile.")
		{
			if _, err := tt.state.SaveProfile("Alice", "alice", ""); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to save the profile: %v", failed, err)
			}

			var board []aggregate.Entry
			if err := c.ReadJSON(&board); err != nil || len(board) != 1 || board[0].Handle != "Alice" {
				t.Fatalf("\t%s\tTest 2:\tShould push the display name: got %+v, %v", failed, board, err)
			}
			t.Logf("\t%s\tTest 2:\tShould push the display name.", success)
		}
	}
}

func TestWallet(t *testing.T) {
	tt := newTests(t)

	t.Log("Given the need to disconnect the node's wallet.")
	{
		t.Logf("\tTest 0:\tWhen the wallet is disconnected.")
		{
			tt.do(http.MethodPost, "/v1/wallet/disconnect", "")

			w := tt.do(http.MethodGet, "/v1/wallet", "")

			var ws struct {
				Connected bool `json:"connected"`
			}
			if err := json.NewDecoder(w.Body).Decode(&ws); err != nil || ws.Connected {
				t.Fatalf("\t%s\tTest 0:\tShould report the wallet as disconnected: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report the wallet as disconnected.", success)

			w = tt.do(http.MethodPost, "/v1/tips/send", `{"to":"`+creator+`","amount":"1"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 0:\tShould refuse to send a tip: got %d", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould refuse to send a tip.", success)

			w = tt.do(http.MethodGet, "/v1/leaderboard/spotlight", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould still serve the views: got %d", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould still serve the views.", success)
		}
	}
}

func TestTipLink(t *testing.T) {
	tt := newTests(t)

	t.Log("Given the need to share a tip link and open it.")
	{
		t.Logf("\tTest 0:\tWhen building a link and opening the tipping page.")
		{
			w := tt.do(http.MethodPost, "/v1/links", `{"creator":"Alice","address":"`+creator+`","amount":"0.5"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 200 for the response: got %d %s", failed, w.Code, w.Body)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 200 for the response.", success)

			var l struct {
				URL string `json:"url"`
			}
			if err := json.NewDecoder(w.Body).Decode(&l); err != nil || !strings.HasPrefix(l.URL, "https://tipjar.example.com/tipping-page?") {
				t.Fatalf("\t%s\tTest 0:\tShould return the tipping page url: got %q, %v", failed, l.URL, err)
			}
			t.Logf("\t%s\tTest 0:\tShould return the tipping page url.", success)

			page := tt.do(http.MethodGet, strings.TrimPrefix(l.URL, "https://tipjar.example.com"), "")
			if page.Code != http.StatusOK || !strings.Contains(page.Body.String(), "Tip Alice") {
				t.Fatalf("\t%s\tTest 0:\tShould render the tipping page for the creator: got %d", failed, page.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould render the tipping page for the creator.", success)
		}
	}
}
