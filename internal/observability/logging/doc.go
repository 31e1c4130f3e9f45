// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//	logger.Info("briefing generated", slog.String("date", b.Date))
//
//	func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.WithRequestID(r.Context(), h.Logger)
//	    logger.Info("refresh requested")
//	}
package logging
