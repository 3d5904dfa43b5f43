package selector

import (
	"sort"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// valueSelect returns the transactions carrying the most value first. A
// producer that cannot fit the whole pool into one block prefers the
// largest transfers.
var valueSelect = func(transactions []database.SignedTx, howMany int) []database.SignedTx {
	sort.Sort(byValue(transactions))

	if howMany == -1 || howMany > len(transactions) {
		howMany = len(transactions)
	}

	return transactions[:howMany]
}

// =============================================================================

// byValue provides sorting support by the transaction value.
type byValue []database.SignedTx

// Len returns the number of transactions in the list.
func (bv byValue) Len() int {
	return len(bv)
}

// Less helps to sort the list by value in descending order to pick the
// transactions that move the most tokens.
func (bv byValue) Less(i, j int) bool {
	if bv[i].Value == bv[j].Value {
		return bv[i].TimeStamp < bv[j].TimeStamp
	}
	return bv[i].Value > bv[j].Value
}

// Swap moves transactions in the order of the value.
func (bv byValue) Swap(i, j int) {
	bv[i], bv[j] = bv[j], bv[i]
}
