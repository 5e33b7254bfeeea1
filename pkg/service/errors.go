package service

import (
	"fmt"
	"net/http"

	"github.com/getfondo/fondod/pkg/fund"
)

// StatusCodeError is implemented by domain errors that map to an HTTP
// status code, so transport layers stay mechanical.
type StatusCodeError interface {
	error
	StatusCode() int
}

// InvalidCredentialsError is returned by Login when no user matches the
// given email and password exactly.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials"
}

// StatusCode returns the HTTP status code for this error.
func (e *InvalidCredentialsError) StatusCode() int {
	return http.StatusUnauthorized
}

// NotFoundError is returned when a referenced entity does not exist.
// Entity names the kind looked up: "user", "fund", or "user or fund".
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// ValidationError is returned when an input value is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// MinimumAmountError is returned when a subscription amount is under the
// fund's minimum.
type MinimumAmountError struct {
	FundName string
	Min      int64
}

func (e *MinimumAmountError) Error() string {
	return fmt.Sprintf("minimum amount for fund %s is %s", e.FundName, fund.FormatCOP(e.Min))
}

// StatusCode returns the HTTP status code for this error.
func (e *MinimumAmountError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// InsufficientBalanceError is returned when a debit would exceed the
// user's available balance.
type InsufficientBalanceError struct {
	FundName string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for fund %s", e.FundName)
}

// StatusCode returns the HTTP status code for this error.
func (e *InsufficientBalanceError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// AlreadySubscribedError is returned when the user already holds an active
// subscription to the fund. At most one portfolio item may exist per
// (user, fund) pair.
type AlreadySubscribedError struct {
	FundName string
}

func (e *AlreadySubscribedError) Error() string {
	return fmt.Sprintf("already subscribed to fund %s", e.FundName)
}

// StatusCode returns the HTTP status code for this error.
func (e *AlreadySubscribedError) StatusCode() int {
	return http.StatusConflict
}

// NotSubscribedError is returned when an unsubscribe targets a fund absent
// from the user's portfolio.
type NotSubscribedError struct {
	FundID string
}

func (e *NotSubscribedError) Error() string {
	return fmt.Sprintf("not subscribed to fund %q", e.FundID)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotSubscribedError) StatusCode() int {
	return http.StatusConflict
}
