package logs

import (
	"io"
	"os"

	"github.com/reusee/grok/cmds"
)

type Writer io.Writer

var logFile = cmds.Var[string]("-log-file")

// Writer is stderr unless -log-file names a file to append to.
func (Module) Writer() Writer {
	if *logFile == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return f
}
