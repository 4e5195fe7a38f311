// Package logging provides structured logging on top of log/slog.
//
// # Configuration
//
// New builds a Logger from a Config:
//
//	logger := logging.New(logging.Config{
//	    Level:         "info",    // "debug", "info", "warn" or "error"; anything else means info
//	    Output:        os.Stdout, // nil means os.Stdout
//	    Pretty:        false,     // true: slog text handler; false: slog JSON handler
//	    IncludeCaller: false,     // true: add the source file and line
//	})
//
// DefaultConfig returns a ready-made Config.
//
// # Fields
//
// WithVersionID, WithInteractionID, WithNodeID, WithNodeType, WithField,
// WithFields and WithError each return a new Logger that adds its
// attributes to every record; the receiver is left unchanged:
//
//	nodeLog := logger.WithInteractionID(id).WithNodeID("n1").WithNodeType("Input")
//	nodeLog.Info("node started")
//	nodeLog.WithError(err).Errorf("node %s failed", "n1")
//
// Debug, Info, Warn and Error take a plain message; Debugf, Infof, Warnf
// and Errorf take a format string. Fatal and Fatalf log at error level and
// exit the process.
//
// # Output
//
// Records are written by slog's JSON or text handler, so they carry
// slog's own keys (time, level, msg) followed by the attached fields:
//
//	{"time":"...","level":"INFO","msg":"node started","interaction_id":"...","node_id":"n1","node_type":"Input"}
//
// # Context
//
// WithContext returns a context.Context carrying the logger, and
// FromContext returns the logger stored there, or a logger built from
// DefaultConfig when there is none. GetSlogLogger exposes the underlying
// *slog.Logger.
package logging
