package model

import "errors"

// Error kinds. Every one of them is fatal for a benchmark run.
var (
	ErrConfig           = errors.New("config error")
	ErrKey              = errors.New("key error")
	ErrTransactionBuild = errors.New("transaction build error")
	ErrSigning          = errors.New("signing error")
	ErrConcurrency      = errors.New("concurrency error")
)
