package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes {data: ...} with the given status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, DataEnvelope{Data: data})
}

// SuccessResponse writes a 200 data envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// RawResponse writes body without an envelope. Used where the public
// contract already names the top level key (alerts, positions, success).
func RawResponse(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}

// DeletedResponse writes {success: true}.
func DeletedResponse(c echo.Context) error {
	return RawResponse(c, SuccessFlag{Success: true})
}

// ErrorResponse writes {error: {code, message}}.
func ErrorResponse(c echo.Context, appErr *AppError) error {
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorEnvelope{Error: appErr})
}

// InternalServerErrorResponse writes a generic 500 error.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, InternalError("Something went wrong"))
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr)
	}
	return InternalServerErrorResponse(c)
}
