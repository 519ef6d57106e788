package statebind

import (
	"errors"
	"fmt"
)

// StoreError captures backend metadata alongside the originating error.
// The engine never produces StoreError for codec failures; those are always
// recovered locally per the Binding contract.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("statebind: store %s key=%q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapStoreError(op, key string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		if storeErr.Op == "" {
			storeErr.Op = op
		}
		if storeErr.Key == "" {
			storeErr.Key = key
		}
		return storeErr
	}

	return &StoreError{
		Op:  op,
		Key: key,
		Err: err,
	}
}
