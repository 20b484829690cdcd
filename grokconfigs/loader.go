package grokconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
	"github.com/reusee/grok/logs"
)

//go:embed schema.cue
var schema string

type ConfigPaths []string

var configPathsFlag = cmds.Collect[string]("-config")

// ConfigPaths lists the files named by -config, in flag order.
func (Module) ConfigPaths() ConfigPaths {
	return ConfigPaths(*configPathsFlag)
}

// ConfigsLoader searches grok.cue and .grok.cue in the working directory, the
// user config dir and /etc, after any -config files. Earlier files win.
func (Module) ConfigsLoader(
	logger logs.Logger,
	extra ConfigPaths,
) configs.Loader {

	paths := append([]string(nil), extra...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	filenames := []string{
		"grok.cue",
		".grok.cue",
	}

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}
