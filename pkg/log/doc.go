// Package log provides the logging abstraction used across kanban.
//
// Library code depends only on the [Logger] interface. The CLI wires a
// zerolog console logger through [ZerologAdapter]; tests and embedders that
// want silence use [NoopLogger], which is also the library default.
//
//	zl, err := log.NewConsoleLogger(os.Stderr, "debug")
//	if err != nil {
//	    return err
//	}
//	logger := log.NewZerologAdapterWithLogger(zl)
//	logger.Info("board loaded", log.Int("lists", 2))
package log
