package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrForbidden
	ErrInsufficientStock
	ErrReservationNotFound
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthorize:         "unauthorize request",
	ErrCredentialExists:    "email or phone already exists",
	ErrInvalidPassword:     "password invalid",
	ErrForbidden:           "forbidden",
	ErrInsufficientStock:   "insufficient stock",
	ErrReservationNotFound: "reservation not found or already processed",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrUnauthorize:         http.StatusUnauthorized,
	ErrCredentialExists:    http.StatusBadRequest,
	ErrInvalidPassword:     http.StatusBadRequest,
	ErrForbidden:           http.StatusForbidden,
	ErrInsufficientStock:   http.StatusBadRequest,
	ErrReservationNotFound: http.StatusNotFound,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthorize:         "0004",
	ErrCredentialExists:    "0005",
	ErrInvalidPassword:     "0006",
	ErrForbidden:           "0007",
	ErrInsufficientStock:   "0008",
	ErrReservationNotFound: "0009",
}
