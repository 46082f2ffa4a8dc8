package service

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 99")
	ErrVariantNotFound    = errors.New("variant not found for product")
	ErrInvalidAddress     = errors.New("invalid shipping address")
	ErrInvalidPayment     = errors.New("unsupported payment method")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrDuplicateReview    = errors.New("product already reviewed by this user")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrIllegalTransition  = errors.New("illegal transition of order status")
)
