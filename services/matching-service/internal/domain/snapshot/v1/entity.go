package snapshotv1

import orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"

// Snapshot is the persisted engine state: the book plus the offset of the last
// command applied to it.
type Snapshot struct {
	OrderOffset int64                 `json:"orderOffset"`
	Book        orderbookv1.BookState `json:"book"`
}
