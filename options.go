package fitsindex

import (
	"github.com/rtrio/fitsindex/log"
	"github.com/rtrio/fitsindex/store"
)

type Option func(*Index) error

// WithLogger routes index logging through the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(ix *Index) error {
		ix.logger = logger.Named("index")
		return nil
	}
}

// WithConfirm installs the gate guarding destructive operations.
// Without one, every destructive operation is declined.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(ix *Index) error {
		ix.confirm = confirm
		return nil
	}
}

// WithStore injects a prebuilt backing store instead of opening one
// from the configuration.
func WithStore(st store.Store) Option {
	return func(ix *Index) error {
		ix.st = st
		return nil
	}
}
