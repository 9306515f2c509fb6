package dbhelper

import "errors"

// Sentinel errors for precondition failures. Handlers map these to HTTP
// statuses with errors.Is; anything else is an internal failure.
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantExists   = errors.New("restaurant already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNotLinked  = errors.New("category not linked to this restaurant")
	ErrDishNotFound       = errors.New("dish not found")
	ErrOrderNotFound      = errors.New("order not found or fields out of date")
	ErrNoPendingOTP       = errors.New("no OTP found for this number")
	ErrIncorrectOTP       = errors.New("incorrect OTP")
	ErrOTPExpired         = errors.New("OTP expired")
)
