package harness

import (
	"time"

	"github.com/btcsuite/btcd/wire"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	TransactionBuilder interface {
		Build() *wire.MsgTx
	}
	TransactionSigner interface {
		SignInput(tx *wire.MsgTx, idx int) error
	}
	CPUClock interface {
		Thread() (time.Duration, error)
		Process() (time.Duration, error)
	}
	Metrics interface {
		ObserveWave(workers int, err error, started time.Time)
		ObserveSample(sample time.Duration)
	}
)
