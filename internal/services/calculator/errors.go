package calculator

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInsufficientStops  = errors.New("at least two stops with an address are required")
	ErrAddressNotFound    = errors.New("address not found")
	ErrServiceUnavailable = errors.New("geocoding service unavailable")
	ErrRouteUnavailable   = errors.New("route unavailable")
)

// AddressNotFoundError указывает, какой именно адрес не нашёлся.
type AddressNotFoundError struct {
	StopID  string
	Address string
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("address not found: %q", e.Address)
}

func (e *AddressNotFoundError) Is(target error) bool {
	return target == ErrAddressNotFound
}

// ProviderError — сбой внешнего провайдера. Kind — ErrServiceUnavailable или ErrRouteUnavailable.
type ProviderError struct {
	Kind error
	Op   string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *ProviderError) Is(target error) bool {
	return target == e.Kind
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsUserError — ошибка ввода, повтор с теми же данными не поможет.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInsufficientStops) || errors.Is(err, ErrAddressNotFound)
}

// IsUnavailable — временный сбой провайдера, расчёт можно повторить целиком.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrRouteUnavailable)
}
