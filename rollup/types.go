package rollup

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrEmptyBlock is returned by L2Block.Validate for a block without transactions.
var ErrEmptyBlock = errors.New("block has no transactions")

// Info is the response of the rollup_getInfo endpoint.
type Info struct {
	Mode          Mode          `json:"mode"`
	Syncing       bool          `json:"syncing"`
	EthContext    EthContext    `json:"ethContext"`
	RollupContext RollupContext `json:"rollupContext"`
}

// EthContext is the anchor-chain position last seen by the node.
type EthContext struct {
	BlockNumber uint64 `json:"blockNumber"`
	Timestamp   uint64 `json:"timestamp"`
}

// RollupContext is the node's position in the rollup: the latest transaction
// index and the next queue index.
type RollupContext struct {
	Index      uint64 `json:"index"`
	QueueIndex uint64 `json:"queueIndex"`
}

// Transaction holds the standard JSON-RPC transaction fields.
type Transaction struct {
	BlockHash        *common.Hash    `json:"blockHash"`
	BlockNumber      *hexutil.Big    `json:"blockNumber"`
	From             common.Address  `json:"from"`
	Gas              hexutil.Uint64  `json:"gas"`
	GasPrice         *hexutil.Big    `json:"gasPrice"`
	Hash             common.Hash     `json:"hash"`
	Input            hexutil.Bytes   `json:"input"`
	Nonce            hexutil.Uint64  `json:"nonce"`
	To               *common.Address `json:"to"`
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"`
	Value            *hexutil.Big    `json:"value"`
	V                *hexutil.Big    `json:"v"`
	R                *hexutil.Big    `json:"r"`
	S                *hexutil.Big    `json:"s"`
}

// L2Transaction is a Transaction with the anchor-chain fields a rollup node adds.
type L2Transaction struct {
	Transaction
	L1BlockNumber  *hexutil.Big    `json:"l1BlockNumber"`
	L1TxOrigin     *common.Address `json:"l1TxOrigin"`
	QueueOrigin    QueueOrigin     `json:"queueOrigin"`
	RawTransaction hexutil.Bytes   `json:"rawTransaction"`
}

// Header holds the standard JSON-RPC block fields.
type Header struct {
	Number     *hexutil.Big   `json:"number"`
	Hash       common.Hash    `json:"hash"`
	ParentHash common.Hash    `json:"parentHash"`
	Nonce      hexutil.Bytes  `json:"nonce"`
	Timestamp  hexutil.Uint64 `json:"timestamp"`
	GasLimit   hexutil.Uint64 `json:"gasLimit"`
	GasUsed    hexutil.Uint64 `json:"gasUsed"`
	Miner      common.Address `json:"miner"`
	ExtraData  hexutil.Bytes  `json:"extraData"`
	Difficulty *hexutil.Big   `json:"difficulty"`
}

// L2Block is a block whose transactions are L2Transactions, plus the state root.
type L2Block struct {
	Header
	StateRoot    common.Hash     `json:"stateRoot"`
	Transactions []L2Transaction `json:"transactions"`
}

// Validate checks that the block carries at least one transaction and that
// every queue origin is known.
func (b *L2Block) Validate() error {
	if len(b.Transactions) == 0 {
		return ErrEmptyBlock
	}
	for i, tx := range b.Transactions {
		if !tx.QueueOrigin.Valid() {
			return fmt.Errorf("transaction %d: %w: %q", i, ErrInvalidQueueOrigin, string(tx.QueueOrigin))
		}
	}
	return nil
}
