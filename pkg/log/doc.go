// Package log defines the logging capability byteship components accept.
//
// The writer only ever reports at warning level, but the Logger interface
// carries the usual four levels so an application can hand byteship the same
// logger it uses everywhere else.
//
// Use the zerolog adapter for real output:
//
//	logger := log.NewZerolog()
//
// or wrap an existing zerolog.Logger:
//
//	logger := log.WrapZerolog(zl)
//
// Tests and embedders that want silence use the no-op logger:
//
//	logger := log.NewNoopLogger()
package log
