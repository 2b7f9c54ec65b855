package repositories

import "fmt"

// NotFoundError reports a referenced row that does not exist. Handlers map
// it to a 404.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// PersistenceError reports a storage failure after retries were exhausted.
// Handlers map it to a 500.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: storage failure after retries: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
