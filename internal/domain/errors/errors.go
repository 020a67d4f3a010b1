package errors

import (
	"errors"
)

// Kind classifies a domain failure so callers can map it to their own
// surface without parsing message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindPolicy
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindPolicy:
		return "policy"
	default:
		return "unknown"
	}
}

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// KindOf reports the Kind of err, or KindUnknown for errors that did not
// originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

var (
	ErrMissingUsername = New(KindValidation, "missing username")
	ErrMissingEmail    = New(KindValidation, "missing email")
	ErrMissingPayPal   = New(KindValidation, "missing paypal handle")
	ErrMissingPassword = New(KindValidation, "missing password")
	ErrMissingUserID   = New(KindValidation, "missing user id")
	ErrMissingItemID   = New(KindValidation, "missing item id")
	ErrMissingTitle    = New(KindValidation, "missing title")
	ErrInvalidPrice    = New(KindValidation, "price must be positive")
	ErrTooManyImages   = New(KindValidation, "an item holds at most three images")

	ErrUsernameTaken      = New(KindConflict, "username already in use")
	ErrItemAlreadySold    = New(KindConflict, "item already sold")
	ErrSoldItemImmutable  = New(KindConflict, "sold items cannot be edited")
	ErrPurchaseInProgress = New(KindConflict, "another purchase for this item is in progress")

	ErrUserNotFound = New(KindNotFound, "user does not exist")
	ErrItemNotFound = New(KindNotFound, "item does not exist")

	ErrInvalidCredentials = New(KindAuth, "invalid password")

	ErrOwnInterest    = New(KindPolicy, "owner cannot express interest in their own item")
	ErrOwnPurchase    = New(KindPolicy, "owner cannot buy their own item")
	ErrInterestOnSold = New(KindPolicy, "sold items cannot receive interest")
	ErrNotOwner       = New(KindPolicy, "only the owner may modify an item")
	ErrDeleteUnsold   = New(KindPolicy, "only sold items can be removed from the gallery")
)
