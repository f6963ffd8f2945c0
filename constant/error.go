package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrDuplicateEmail
	ErrInvalidCredentials
	ErrInvalidToken
	ErrTokenExpired
	ErrInvalidID
	ErrForbidden
	ErrUnsupportedMediaType
	ErrInvalidStatus
	ErrTooManyRequests
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "error internal",
	ErrNotFound:             "data not found",
	ErrInvalidRequest:       "invalid request",
	ErrUnauthorize:          "unauthorize request",
	ErrDuplicateEmail:       "email already registered",
	ErrInvalidCredentials:   "invalid credentials",
	ErrInvalidToken:         "could not validate credentials",
	ErrTokenExpired:         "token expired",
	ErrInvalidID:            "invalid id format",
	ErrForbidden:            "you are not authorized to modify this property",
	ErrUnsupportedMediaType: "file type not allowed",
	ErrInvalidStatus:        `status must be one of "en cours", "vendu", "loué", "retiré"`,
	ErrTooManyRequests:      "too many attempts, try again later",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrNotFound:             http.StatusNotFound,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrUnauthorize:          http.StatusUnauthorized,
	ErrDuplicateEmail:       http.StatusBadRequest,
	ErrInvalidCredentials:   http.StatusForbidden,
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrTokenExpired:         http.StatusUnauthorized,
	ErrInvalidID:            http.StatusBadRequest,
	ErrForbidden:            http.StatusForbidden,
	ErrUnsupportedMediaType: http.StatusBadRequest,
	ErrInvalidStatus:        http.StatusUnprocessableEntity,
	ErrTooManyRequests:      http.StatusTooManyRequests,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "0000",
	ErrInternal:             "0001",
	ErrNotFound:             "0002",
	ErrInvalidRequest:       "0003",
	ErrUnauthorize:          "0004",
	ErrDuplicateEmail:       "0005",
	ErrInvalidCredentials:   "0006",
	ErrInvalidToken:         "0007",
	ErrTokenExpired:         "0008",
	ErrInvalidID:            "0009",
	ErrForbidden:            "0010",
	ErrUnsupportedMediaType: "0011",
	ErrInvalidStatus:        "0012",
	ErrTooManyRequests:      "0013",
}
