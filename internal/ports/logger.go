package ports

import "github.com/bft-labs/kanban/pkg/log"

// Logger is the logging port. It is the same interface as pkg/log.Logger.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for the internal layers.
var (
	String   = log.String
	Int      = log.Int
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
