package errutil

import (
	"context"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/utils/logging"
)

// Handle logs the error with its goerr values and forwards it to Sentry if
// the SDK has been initialized. Used for errors that are tolerated rather
// than returned.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	attrs := []any{"error", err.Error()}
	if goErr := goerr.Unwrap(err); goErr != nil {
		for k, v := range goErr.Values() {
			attrs = append(attrs, k, v)
		}
	}
	logger.Error(msg, attrs...)

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}
}

// HandleHTTP logs the error and writes a minimal error response. Internal
// details never reach the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, code int) {
	Handle(ctx, err, "http request failed")
	http.Error(w, http.StatusText(code), code)
}
