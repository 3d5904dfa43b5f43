// Package selector provides different transaction selecting algorithms.
package selector

import (
	"fmt"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// List of the different select strategies.
const (
	StrategyFIFO  = "fifo"
	StrategyValue = "value"
)

// Map of the different select strategies with functions.
var strategies = map[string]Func{
	StrategyFIFO:  fifoSelect,
	StrategyValue: valueSelect,
}

// Func defines a function that takes the pending transactions and selects
// howMany of them in an order based on the function's strategy. Receiving -1
// for howMany must return all the transactions in the strategy's ordering.
type Func func(transactions []database.SignedTx, howMany int) []database.SignedTx

// Retrieve returns the specified select strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strategy]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}
