package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Eursukkul/events-dashboard/internal/dto"
	"github.com/labstack/echo/v4"
)

// ServerErrorMessage is what callers see for failures that carry no status.
const ServerErrorMessage = "Server error"

// ErrorHandler is the single place errors become responses: every one is
// written as {"message": ...} with the status the handler chose. Anything
// that is not an *echo.HTTPError is logged in full and answered with a
// generic 500 so internal details never reach the browser.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	status, message := http.StatusInternalServerError, ServerErrorMessage

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = messageOf(he)
		if he.Internal != nil {
			log.Printf("%s %s -> %d: %v", req.Method, req.URL.Path, status, he.Internal)
		}
	} else {
		log.Printf("%s %s -> 500: %v", req.Method, req.URL.Path, err)
	}

	if req.Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, dto.ErrorResponse{Message: message})
}

func messageOf(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
