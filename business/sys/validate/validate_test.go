package validate_test

import (
	"testing"

	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type tip struct {
	To      string `json:"to" validate:"required,address"`
	Amount  string `json:"amount" validate:"required"`
	Message string `json:"message" validate:"max=200"`
}

func TestCheck(t *testing.T) {
	v, err := validate.New(wallet.HexAddress)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a validator: %v", failed, err)
	}

	t.Log("Given the need to validate request models.")
	{
		t.Logf("\tTest 0:\tWhen the model is valid.")
		{
			m := tip{To: "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", Amount: "1"}
			if err := v.Check(m); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould pass validation: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould pass validation.", success)
		}

		t.Logf("\tTest 1:\tWhen the model has invalid fields.")
		{
			m := tip{To: "nope"}

			err := v.Check(m)
			if !validate.IsFieldErrors(err) {
				t.Fatalf("\t%s\tTest 1:\tShould fail with field errors: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould fail with field errors.", success)

			fields := validate.GetFieldErrors(err).Fields()
			if fields["to"] != "to must be a valid address" {
				t.Fatalf("\t%s\tTest 1:\tShould report the address by its json name: got %v", failed, fields)
			}
			t.Logf("\t%s\tTest 1:\tShould report the address by its json name.", success)

			if _, exists := fields["amount"]; !exists {
				t.Fatalf("\t%s\tTest 1:\tShould report the missing amount: got %v", failed, fields)
			}
			t.Logf("\t%s\tTest 1:\tShould report the missing amount.", success)
		}
	}
}
