package model

import "errors"

var (
	// ErrNotCoinbase is returned when the first input of a fetched transaction is not a coinbase input.
	ErrNotCoinbase = errors.New("transaction is not a coinbase")
	// ErrEmptyBlock is returned when a block reports no transaction ids.
	ErrEmptyBlock = errors.New("block has no transactions")
)
