// Package logger provides slog attribute helpers for the messaging core.
//
// Attribute helpers follow the empty-Attr pattern for nil safety: passing a
// nil error or empty identifier yields an empty attribute that slog elides,
// so call sites never need explicit nil checks:
//
//	log.Info("message dispatched",
//		logger.Topic("alerts"),
//		logger.Error(err), // elided when err is nil
//	)
package logger
