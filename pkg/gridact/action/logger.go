package action

// Logger is the diagnostic capability the dispatcher accepts at
// construction. The standard library *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
