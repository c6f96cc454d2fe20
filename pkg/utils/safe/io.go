package safe

import (
	"context"
	"io"

	"github.com/remedian-lab/remedian/pkg/utils/logging"
)

// Close closes the closer and logs the error instead of dropping it
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", "error", err.Error())
	}
}

// Copy copies from src to dst and logs the error instead of dropping it
func Copy(ctx context.Context, dst io.Writer, src io.Reader) {
	if _, err := io.Copy(dst, src); err != nil {
		logging.From(ctx).Warn("failed to copy", "error", err.Error())
	}
}
