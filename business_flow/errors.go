// Package businessflow contains the use cases behind the inventory reports, fixture loading and schema management
package businessflow

import (
	"errors"
	"fmt"

	"github.com/amirphl/retail-inventory/fixtures"
)

// Business flow error constants
var (
	// Catalog errors
	ErrStoreNotFound      = errors.New("store not found")
	ErrDepartmentNotFound = errors.New("department not found")

	// Fixture errors
	ErrReloadInProgress   = errors.New("a fixture reload is already in progress")
	ErrInvalidDataset     = fixtures.ErrInvalidDataset
	ErrInvalidRecordCount = fixtures.ErrInvalidRecordCount

	// Schema errors
	ErrIndexOperationFailed = errors.New("one or more index statements failed")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// AsBusinessError extracts the outermost BusinessError from err, if any
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func IsStoreNotFound(err error) bool {
	return errors.Is(err, ErrStoreNotFound)
}

func IsDepartmentNotFound(err error) bool {
	return errors.Is(err, ErrDepartmentNotFound)
}

func IsReloadInProgress(err error) bool {
	return errors.Is(err, ErrReloadInProgress)
}

func IsInvalidDataset(err error) bool {
	return errors.Is(err, ErrInvalidDataset)
}

func IsInvalidRecordCount(err error) bool {
	return errors.Is(err, ErrInvalidRecordCount)
}

func IsIndexOperationFailed(err error) bool {
	return errors.Is(err, ErrIndexOperationFailed)
}
