package selector

import (
	"sort"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// fifoSelect returns transactions in the order they were created, oldest
// first. This is the default strategy since execution order inside a block
// should match submission order.
var fifoSelect = func(transactions []database.SignedTx, howMany int) []database.SignedTx {
	sort.Sort(byTimeStamp(transactions))

	if howMany == -1 || howMany > len(transactions) {
		howMany = len(transactions)
	}

	return transactions[:howMany]
}

// =============================================================================

// byTimeStamp provides sorting support by the transaction timestamp.
type byTimeStamp []database.SignedTx

// Len returns the number of transactions in the list.
func (bt byTimeStamp) Len() int {
	return len(bt)
}

// Less helps to sort the list by timestamp in ascending order to keep the
// transactions in the order they were created.
func (bt byTimeStamp) Less(i, j int) bool {
	if bt[i].TimeStamp == bt[j].TimeStamp {
		return bt[i].UniqueKey() < bt[j].UniqueKey()
	}
	return bt[i].TimeStamp < bt[j].TimeStamp
}

// Swap moves transactions in the order of the timestamp value.
func (bt byTimeStamp) Swap(i, j int) {
	bt[i], bt[j] = bt[j], bt[i]
}
