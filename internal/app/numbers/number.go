package numbers

import (
	"fmt"
	"math/big"
	"strconv"
)

// Number is a combined number of arbitrary length. The zero value is 0.
type Number struct {
	value *big.Int
}

// Parse reads a base-10 number such as one stored by a repository.
func Parse(s string) (Number, error) {
	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	return Number{value: value}, nil
}

func (n Number) String() string {
	if n.value == nil {
		return "0"
	}
	return n.value.String()
}

// MarshalJSON renders the number as a quoted decimal string; JSON clients
// that read numbers as float64 would lose digits otherwise.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(n.String())), nil
}
