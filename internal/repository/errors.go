package repository

import "errors"

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrLeadNotFound    = errors.New("lead not found")
	ErrAdNotFound      = errors.New("advertisement not found")
	ErrImageNotFound   = errors.New("image not found")
)
