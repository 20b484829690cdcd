package grokrun

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/reusee/grok/grokasm"
	"github.com/reusee/grok/grokvm"
	"github.com/reusee/grok/logs"
)

// ImageExt marks files holding an encoded program image. Other files are
// read as assembly.
const ImageExt = ".grokc"

type LoadProgram func(path string) (*grokvm.Program, error)

func (Module) LoadProgram(
	logger logs.Logger,
) LoadProgram {
	return func(path string) (*grokvm.Program, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, wrap(err)
		}

		var program *grokvm.Program
		if filepath.Ext(path) == ImageExt {
			program, err = grokvm.UnmarshalProgram(content)
		} else {
			program, err = grokasm.Parse(bytes.NewReader(content))
		}
		if err != nil {
			return nil, wrap(err)
		}

		logger.Debug("program loaded",
			"path", path,
			"instructions", len(program.Code),
		)
		return program, nil
	}
}
