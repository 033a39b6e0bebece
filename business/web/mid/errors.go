package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/ardanlabs/tipjar/business/sys/validate"
	"github.com/ardanlabs/tipjar/business/web/errs"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"github.com/ardanlabs/tipjar/foundation/tipjar/wallet"
	"github.com/ardanlabs/tipjar/foundation/web"
	"go.uber.org/zap"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform way.
// Unexpected errors (status >= 500) are logged.
func Errors(log *zap.SugaredLogger) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// If the context is missing this value, request the service
			// to be shutdown gracefully.
			v, err := web.GetValues(ctx)
			if err != nil {
				return web.NewShutdownError("web value missing from context")
			}

			// Run the next handler and catch any propagated error.
			if err := handler(ctx, w, r); err != nil {

				// Log the error.
				log.Errorw("ERROR", "traceid", v.TraceID, "ERROR", err)

				// Build out the error response.
				er, status := toResponse(err)

				// Respond with the error back to the client.
				if err := web.Respond(ctx, w, er, status); err != nil {
					return err
				}

				// If we receive the shutdown err we need to return it
				// back to the base handler to shut down the service.
				if web.IsShutdown(err) {
					return err
				}
			}

			// The error has been handled so we can stop propagating it.
			return nil
		}

		return h
	}

	return m
}

// toResponse maps an error to the response a client is allowed to see.
func toResponse(err error) (errs.Response, int) {
	switch {
	case validate.IsFieldErrors(err):
		fe := validate.GetFieldErrors(err)
		return errs.Response{Error: "data validation error", Fields: fe.Fields()}, http.StatusBadRequest

	case database.IsValidationError(err):
		var ve *database.ValidationError
		errors.As(err, &ve)
		return errs.Response{Error: ve.Msg, Fields: map[string]string{ve.Field: ve.Msg}}, http.StatusBadRequest

	case wallet.IsTransferError(err):
		te := wallet.TransferFailure(err)
		status := http.StatusBadGateway
		if te.Msg == wallet.MsgInvalidAddress || te.Msg == wallet.MsgMemoTooLarge {
			status = http.StatusBadRequest
		}
		return errs.Response{Error: te.Msg}, status

	case database.IsPersistenceError(err):
		return errs.Response{Error: "Tip could not be recorded."}, http.StatusInternalServerError

	case errs.IsTrusted(err):
		te := errs.GetTrusted(err)
		return errs.Response{Error: te.Error()}, te.Status
	}

	return errs.Response{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError
}
