package selection

import (
	"strings"

	"gastos/internal/core"
)

// Payload prefixes distinguishing expense category choices from income
// source choices.
const (
	prefixCategory = "cat"
	prefixSource   = "inc"
)

// Pending is the state threaded through the interactive control between
// suggestion and confirmation. It is self-describing: decoding it needs no
// server-side session lookup, so a pending choice survives process restarts.
type Pending struct {
	Kind        core.Kind
	Label       string
	Amount      core.Money
	Description string
}

// Encode packs the pending selection into the opaque token bound to one
// choice button: "<prefix>_<label>_<amount>_<description>". The description
// goes last so it may itself contain separators.
func Encode(p Pending) string {
	prefix := prefixCategory
	if p.Kind == core.Income {
		prefix = prefixSource
	}
	return strings.Join([]string{prefix, p.Label, p.Amount.Decimal(), p.Description}, "_")
}

// Decode unpacks a choice token. Malformed tokens, unknown prefixes and
// non-positive amounts yield core.ErrInvalidChoice; label membership is
// validated later against the enumerated set for the kind.
func Decode(token string) (Pending, error) {
	parts := strings.SplitN(token, "_", 4)
	if len(parts) != 4 {
		return Pending{}, core.ErrInvalidChoice
	}
	var kind core.Kind
	switch parts[0] {
	case prefixCategory:
		kind = core.Expense
	case prefixSource:
		kind = core.Income
	default:
		return Pending{}, core.ErrInvalidChoice
	}
	amount, err := core.ParseMoney(parts[2])
	if err != nil {
		return Pending{}, core.ErrInvalidChoice
	}
	return Pending{
		Kind:        kind,
		Label:       parts[1],
		Amount:      amount,
		Description: parts[3],
	}, nil
}
