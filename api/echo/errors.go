package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/session"
)

var (
	errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
		"error":    "login required",
		"location": "/login",
	})
	errLoginPending = echo.NewHTTPError(http.StatusConflict, "a login attempt is already in progress")
	errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")
)

func roleMismatchMessage(claimed auth.Role) string {
	return fmt.Sprintf(
		"This account is not authorized for %s login. Please check your credentials or select the correct role.",
		claimed.Title(),
	)
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(opts *Options, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(opts.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *auth.RoleMismatchError:
			code = http.StatusBadRequest
			message = roleMismatchMessage(origErr.Claimed)
		default:
			if errors.Cause(err) == session.ErrLoginPending {
				code = errLoginPending.Code
				message = errLoginPending.Message
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			if p, ok := opts.Sessions.Current(); ok {
				opts.Logger.Error(msg, errors.Wrap(err, msg), p)
			} else {
				opts.Logger.Error(msg, errors.Wrap(err, msg))
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
