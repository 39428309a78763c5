package rollup

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrUnknownBatchElement is returned when an element is neither a state root
// nor a transaction element.
var ErrUnknownBatchElement = errors.New("unknown batch element kind")

// BatchElementKind discriminates the two BatchElement cases on the wire.
type BatchElementKind string

const (
	KindStateRoot   BatchElementKind = "stateRoot"
	KindTransaction BatchElementKind = "transaction"
)

// BatchElementContext is shared by every batch element.
type BatchElementContext struct {
	Timestamp   uint64 `json:"timestamp"`
	BlockNumber uint64 `json:"blockNumber"`
}

// BatchElement is either a *StateRootBatchElement or a *TransactionBatchElement.
// The set is closed; switch on the concrete type to handle both cases.
type BatchElement interface {
	Kind() BatchElementKind
	Context() BatchElementContext
	batchElement()
}

// StateRootBatchElement is published to the state commitment chain.
type StateRootBatchElement struct {
	BatchElementContext
	StateRoot common.Hash `json:"stateRoot"`
}

// Kind returns KindStateRoot.
func (*StateRootBatchElement) Kind() BatchElementKind { return KindStateRoot }

// Context returns the timestamp and block number of the element.
func (e *StateRootBatchElement) Context() BatchElementContext { return e.BatchElementContext }

func (*StateRootBatchElement) batchElement() {}

// MarshalJSON encodes the element with a "kind" field set to "stateRoot".
func (e *StateRootBatchElement) MarshalJSON() ([]byte, error) {
	type plain StateRootBatchElement
	return json.Marshal(struct {
		Kind BatchElementKind `json:"kind"`
		*plain
	}{KindStateRoot, (*plain)(e)})
}

// TransactionBatchElement is published to the canonical transaction chain.
// RawTransaction is nil for queue transactions, which are not posted in full.
type TransactionBatchElement struct {
	BatchElementContext
	IsSequencerTx  bool    `json:"isSequencerTx"`
	RawTransaction *string `json:"rawTransaction"`
}

// Kind returns KindTransaction.
func (*TransactionBatchElement) Kind() BatchElementKind { return KindTransaction }

// Context returns the timestamp and block number of the element.
func (e *TransactionBatchElement) Context() BatchElementContext { return e.BatchElementContext }

func (*TransactionBatchElement) batchElement() {}

// MarshalJSON encodes the element with a "kind" field set to "transaction".
func (e *TransactionBatchElement) MarshalJSON() ([]byte, error) {
	type plain TransactionBatchElement
	return json.Marshal(struct {
		Kind BatchElementKind `json:"kind"`
		*plain
	}{KindTransaction, (*plain)(e)})
}

// UnmarshalBatchElement decodes one element using its "kind" field. Elements
// without a kind are told apart by field presence: "stateRoot" marks a state
// root element, "isSequencerTx" a transaction element.
func UnmarshalBatchElement(data []byte) (BatchElement, error) {
	var head struct {
		Kind          BatchElementKind `json:"kind"`
		StateRoot     json.RawMessage  `json:"stateRoot"`
		IsSequencerTx json.RawMessage  `json:"isSequencerTx"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	kind := head.Kind
	if kind == "" {
		switch {
		case head.StateRoot != nil && head.IsSequencerTx == nil:
			kind = KindStateRoot
		case head.IsSequencerTx != nil && head.StateRoot == nil:
			kind = KindTransaction
		}
	}

	var elem BatchElement
	switch kind {
	case KindStateRoot:
		elem = &StateRootBatchElement{}
	case KindTransaction:
		elem = &TransactionBatchElement{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBatchElement, string(head.Kind))
	}
	if err := json.Unmarshal(data, elem); err != nil {
		return nil, err
	}
	return elem, nil
}

// Batch is an ordered list of batch elements.
type Batch []BatchElement

// UnmarshalJSON decodes every element with UnmarshalBatchElement.
func (b *Batch) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Batch, 0, len(raw))
	for i, msg := range raw {
		elem, err := UnmarshalBatchElement(msg)
		if err != nil {
			return fmt.Errorf("batch element %d: %w", i, err)
		}
		out = append(out, elem)
	}
	*b = out
	return nil
}
