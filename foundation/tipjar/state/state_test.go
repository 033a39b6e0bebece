package state_test

import (
	"context"
	"errors"
	"math/big"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/state"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage/memory"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
	"github.com/ethereum/go-ethereum/crypto"
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

// stubWallet is a connected wallet whose transfers fail or never confirm.
type stubWallet struct {
	sendErr error
	block   bool
}

func (sw *stubWallet) Address() (string, bool) {
	return "0x0000000000000000000000000000000000000001", true
}

func (sw *stubWallet) SendTransfer(ctx context.Context, to string, amount *big.Int, memo string) (string, error) {
	if sw.sendErr != nil {
		return "", sw.sendErr
	}
	return "sig", nil
}

func (sw *stubWallet) Confirm(ctx context.Context, sig string) error {
	if sw.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (sw *stubWallet) Disconnect() {}

// failingStorage rejects every write once armed.
type failingStorage struct {
	*memory.Memory
	failPut bool
}

func (fs *failingStorage) Put(key string, value []byte) error {
	if fs.failPut {
		return errors.New("quota exceeded")
	}
	return fs.Memory.Put(key, value)
}

func newState(t *testing.T, conn wallet.Connector, store storage.Storage, notify func(string)) *state.State {
	t.Helper()

	if conn == nil {
		pk, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the key: %v", failed, err)
		}
		conn = wallet.NewLocal(pk)
	}

	st, err := state.New(state.Config{
		Storage:        store,
		Wallet:         conn,
		ValidAddress:   wallet.HexAddress,
		Decimals:       9,
		ConfirmTimeout: time.Second,
		Notify:         notify,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	return st
}

// =============================================================================

func TestSendTip(t *testing.T) {
	t.Log("Given the need to send tips and record them.")
	{
		t.Logf("\tTest 0:\tWhen sending a direct tip.")
		{
			var notified []string
			st := newState(t, nil, memory.New(), func(key string) { notified = append(notified, key) })

			rec, err := st.SendTip(context.Background(), state.TipRequest{To: creator, Amount: "0.25", Message: " thanks "})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to send a tip: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to send a tip.", success)

			if rec.Handle != "Direct Tip" || rec.Amount != "0.25" || rec.Message != "thanks" || rec.Sig == "" {
				t.Fatalf("\t%s\tTest 0:\tShould build the record from the request: got %+v", failed, rec)
			}
			t.Logf("\t%s\tTest 0:\tShould build the record from the request.", success)

			recent := st.RecentTips()
			if len(recent) != 1 || recent[0].Sig != rec.Sig {
				t.Fatalf("\t%s\tTest 0:\tShould record the tip for the sender: got %d", failed, len(recent))
			}
			t.Logf("\t%s\tTest 0:\tShould record the tip for the sender.", success)

			board := st.Leaderboard()
			if len(board) != 1 || board[0].Address != creator || board[0].TotalAmount.String() != "0.25" {
				t.Fatalf("\t%s\tTest 0:\tShould rank the creator on the leaderboard: got %+v", failed, board)
			}
			t.Logf("\t%s\tTest 0:\tShould rank the creator on the leaderboard.", success)

			if len(notified) != 1 || notified[0] != database.GlobalKey {
				t.Fatalf("\t%s\tTest 0:\tShould notify once for the global key: got %v", failed, notified)
			}
			t.Logf("\t%s\tTest 0:\tShould notify once for the global key.", success)
		}

		t.Logf("\tTest 1:\tWhen sending link tips past the sender cap.")
		{
			st := newState(t, nil, memory.New(), nil)

			for range 7 {
				if _, err := st.SendTip(context.Background(), state.TipRequest{To: creator, Amount: "1", Handle: "Alice", Link: true}); err != nil {
					t.Fatalf("\t%s\tTest 1:\tShould be able to send a link tip: %v", failed, err)
				}
			}

			if got := len(st.RecentTips()); got != database.SenderCapLink {
				t.Fatalf("\t%s\tTest 1:\tShould cap the sender list at %d: got %d", failed, database.SenderCapLink, got)
			}
			t.Logf("\t%s\tTest 1:\tShould cap the sender list at %d.", success, database.SenderCapLink)

			if got := len(st.GlobalTips()); got != 7 {
				t.Fatalf("\t%s\tTest 1:\tShould keep every tip in the global list: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould keep every tip in the global list.", success)

			stats := st.TipperStats()
			if stats.TipCount != 5 || stats.UniqueCreators != 1 || stats.TotalTipped.String() != "5" {
				t.Fatalf("\t%s\tTest 1:\tShould compute stats from the sender list: got %+v", failed, stats)
			}
			t.Logf("\t%s\tTest 1:\tShould compute stats from the sender list.", success)

			if board := st.Spotlight(); len(board) != 1 || board[0].Handle != "Alice" {
				t.Fatalf("\t%s\tTest 1:\tShould use the link handle on the leaderboard: got %+v", failed, board)
			}
			t.Logf("\t%s\tTest 1:\tShould use the link handle on the leaderboard.", success)
		}
	}
}

func TestSendTipValidation(t *testing.T) {
	type table struct {
		name string
		req  state.TipRequest
	}

	tt := []table{
		{name: "no-recipient", req: state.TipRequest{Amount: "1"}},
		{name: "no-amount", req: state.TipRequest{To: creator}},
		{name: "bad-address", req: state.TipRequest{To: "not-an-address", Amount: "1"}},
		{name: "zero-amount", req: state.TipRequest{To: creator, Amount: "0"}},
		{name: "negative-amount", req: state.TipRequest{To: creator, Amount: "-2"}},
		{name: "text-amount", req: state.TipRequest{To: creator, Amount: "lots"}},
		{name: "long-message", req: state.TipRequest{To: creator, Amount: "1", Message: strings.Repeat("m", state.MaxMessageLength+1)}},
		{name: "link-no-handle", req: state.TipRequest{To: creator, Amount: "1", Link: true}},
	}

	t.Log("Given the need to reject invalid tips before any transfer.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen sending a %s tip.", testID, tst.name)
				{
					mem := memory.New()
					st := newState(t, nil, mem, nil)

					_, err := st.SendTip(context.Background(), tst.req)
					if !database.IsValidationError(err) {
						t.Fatalf("\t%s\tTest %d:\tShould fail with a validation error: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould fail with a validation error.", success, testID)

					if len(st.GlobalTips()) != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould not record anything.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not record anything.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}

		t.Logf("\tTest %d:\tWhen the wallet is disconnected.", len(tt))
		{
			st := newState(t, nil, memory.New(), nil)
			st.Disconnect()

			if _, ok := st.WalletStatus(); ok {
				t.Fatalf("\t%s\tTest %d:\tShould report the wallet as disconnected.", failed, len(tt))
			}

			_, err := st.SendTip(context.Background(), state.TipRequest{To: creator, Amount: "1"})
			var ve *database.ValidationError
			if !errors.As(err, &ve) || ve.Field != "wallet" {
				t.Fatalf("\t%s\tTest %d:\tShould ask for a wallet connection: %v", failed, len(tt), err)
			}
			t.Logf("\t%s\tTest %d:\tShould ask for a wallet connection.", success, len(tt))
		}
	}
}

func TestSendTipFailures(t *testing.T) {
	t.Log("Given the need to report transfer and recording failures.")
	{
		t.Logf("\tTest 0:\tWhen the user rejects the transfer.")
		{
			st := newState(t, &stubWallet{sendErr: errors.New("User rejected the request.")}, memory.New(), nil)

			_, err := st.SendTip(context.Background(), state.TipRequest{To: creator, Amount: "1"})
			var te *wallet.TransferError
			if !errors.As(err, &te) || te.Msg != wallet.MsgRejected {
				t.Fatalf("\t%s\tTest 0:\tShould fail with a rejected transfer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould fail with a rejected transfer.", success)

			if len(st.GlobalTips()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not record the tip.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not record the tip.", success)
		}

		t.Logf("\tTest 1:\tWhen the transfer never confirms.")
		{
			st, err := state.New(state.Config{
				Storage:        memory.New(),
				Wallet:         &stubWallet{block: true},
				ValidAddress:   wallet.HexAddress,
				Decimals:       9,
				ConfirmTimeout: 10 * time.Millisecond,
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the state: %v", failed, err)
			}

			_, err = st.SendTip(context.Background(), state.TipRequest{To: creator, Amount: "1"})
			if !wallet.IsTransferError(err) || !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("\t%s\tTest 1:\tShould fail with a transfer error on timeout: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould fail with a transfer error on timeout.", success)
		}

		t.Logf("\tTest 2:\tWhen the tip confirms but cannot be recorded.")
		{
			fs := failingStorage{Memory: memory.New(), failPut: true}
			st := newState(t, nil, &fs, nil)

			rec, err := st.SendTip(context.Background(), state.TipRequest{To: creator, Amount: "1"})
			if !database.IsPersistenceError(err) {
				t.Fatalf("\t%s\tTest 2:\tShould fail with a persistence error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould fail with a persistence error.", success)

			if rec.Sig == "" {
				t.Fatalf("\t%s\tTest 2:\tShould still return the confirmed record.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould still return the confirmed record.", success)
		}
	}
}

func TestProfiles(t *testing.T) {
	t.Log("Given the need to manage the connected creator's profile.")
	{
		t.Logf("\tTest 0:\tWhen saving and updating a profile.")
		{
			var notified []string
			st := newState(t, nil, memory.New(), func(key string) { notified = append(notified, key) })
			address, _ := st.WalletStatus()

			if _, err := st.SaveProfile("  ", "bob", ""); !database.IsValidationError(err) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a blank display name: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a blank display name.", success)

			if _, err := st.SaveProfile("Alice", "alice", "https://example.com/a.png"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to save a profile: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to save a profile.", success)

			p, err := st.SaveProfile("Alicia", "", "")
			if err != nil || p.DisplayName != "Alicia" || p.AvatarURL != "https://example.com/a.png" {
				t.Fatalf("\t%s\tTest 0:\tShould keep the stored avatar on update: got %+v, %v", failed, p, err)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the stored avatar on update.", success)

			if got, ok := st.QueryProfile(address); !ok || got != p {
				t.Fatalf("\t%s\tTest 0:\tShould be able to query the saved profile: got %+v", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to query the saved profile.", success)

			if len(notified) != 2 || notified[0] != database.ProfileKey(address) {
				t.Fatalf("\t%s\tTest 0:\tShould notify for each successful save: got %v", failed, notified)
			}
			t.Logf("\t%s\tTest 0:\tShould notify for each successful save.", success)
		}

		t.Logf("\tTest 1:\tWhen seeding profiles from a file.")
		{
			st := newState(t, nil, memory.New(), nil)

			seed := `profiles:
  - address: ` + creator + `
    displayName: Carol
    username: carol
  - address: 0x0000000000000000000000000000000000000002
    displayName: ""
`
			path := filepath.Join(t.TempDir(), "profiles.yaml")
			if err := os.WriteFile(path, []byte(seed), 0600); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the seed file: %v", failed, err)
			}

			n, err := st.SeedProfiles(path)
			if err != nil || n != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould save only the valid profile: got %d, %v", failed, n, err)
			}
			t.Logf("\t%s\tTest 1:\tShould save only the valid profile.", success)

			if p, ok := st.QueryProfile(creator); !ok || p.DisplayName != "Carol" {
				t.Fatalf("\t%s\tTest 1:\tShould be able to query the seeded profile: got %+v", failed, p)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to query the seeded profile.", success)
		}
	}
}

func TestTipLink(t *testing.T) {
	t.Log("Given the need to build shareable tip links.")
	{
		st := newState(t, nil, memory.New(), nil)

		t.Logf("\tTest 0:\tWhen building a link with every field.")
		{
			link, err := st.TipLink("https://tipjar.example.com/", "Alice & Co", creator, "0.5", "https://example.com/a.png")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build a link: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to build a link.", success)

			u, err := url.Parse(link)
			if err != nil || u.Path != "/tipping-page" {
				t.Fatalf("\t%s\tTest 0:\tShould point at the tipping page: got %q", failed, link)
			}
			t.Logf("\t%s\tTest 0:\tShould point at the tipping page.", success)

			q := u.Query()
			if q.Get("creator") != "Alice & Co" || q.Get("address") != creator || q.Get("amount") != "0.5" || q.Get("pfp") == "" {
				t.Fatalf("\t%s\tTest 0:\tShould carry the creator details: got %v", failed, q)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the creator details.", success)
		}

		t.Logf("\tTest 1:\tWhen fields are missing or invalid.")
		{
			bad := [][3]string{
				{"", creator, "1"},
				{"Alice", "nope", "1"},
				{"Alice", creator, "0"},
			}
			for _, b := range bad {
				if _, err := st.TipLink("https://tipjar.example.com", b[0], b[1], b[2], ""); !database.IsValidationError(err) {
					t.Fatalf("\t%s\tTest 1:\tShould reject %v: %v", failed, b, err)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould reject incomplete links.", success)
		}
	}
}
