package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// FrontendError is an in-circuit helper that prints an error message and an
// error trace, then forces the constraint system unsatisfiable.
// OriginCircuit.Define uses it instead of returning an error directly, so a
// failure there shows up in prover logs with context instead of a bare
// "constraint not satisfied"; the Extend Define methods return their errors.
func FrontendError(api frontend.API, msg string, trace error) {
	err := fmt.Errorf("%s", msg)
	if trace != nil {
		err = fmt.Errorf("%w: %v", err, trace)
	}
	api.Println(err.Error())
	api.AssertIsEqual(1, 0)
}
