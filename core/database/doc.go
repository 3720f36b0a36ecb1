// Package database opens the run history database and inspects its schema.
//
// Connect wraps GORM and picks the dialector from Config.Driver: MySQL for deployments,
// SQLite for local runs and tests. The database is optional; commands and the server keep
// working without it and only lose the run history.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for the integrity check, using SHOW COLUMNS
// on MySQL and PRAGMA table_info on SQLite.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("run history disabled", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "match_runs")
package database
