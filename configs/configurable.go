package configs

// Configurable is a config value type that names the cue path it is read from.
type Configurable interface {
	ConfigPath() string
}

// Lookup decodes the first value found at T's config path, or returns the
// zero T when no file defines it.
func Lookup[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigPath())
}
