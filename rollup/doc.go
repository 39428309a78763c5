// Package rollup declares the JSON shapes returned by a rollup node's RPC
// endpoints: node status (rollup_getInfo), blocks and transactions extended
// with anchor-chain fields, and the elements of state-root and transaction
// batches. Types carry no behavior beyond encoding and shape validation.
package rollup
