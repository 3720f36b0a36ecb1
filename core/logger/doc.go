// Package logger builds the zap logger used by commands and services.
//
// The debug level selects zap's development preset; every other level uses the production
// preset. Format chooses between json and console encoding.
//
// WithRayID decorates a logger with the request ray id stored by the rayid middleware,
// so every line of one HTTP request can be correlated.
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("server started")
//
//	l := logger.WithRayID(log, c)
//	l.Warn("malformed item", zap.String("item_id", id))
package logger
