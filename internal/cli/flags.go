package cli

import "clusterfail/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile       string
	ResultsDir       string
	MarkdownOut      string
	JSONOut          string
	Pattern          string
	Suite            string
	NormalizeNumbers bool
	MaxSignatureLen  int
	Quiet            bool
	Verbose          bool
	TLS              bool
	Ping             bool
	ClusterFolder    string
}

// ToConfigFlags converts CLI flags to config flags. changed reports whether a
// flag was set on the command line; unset booleans are left to the config.
func (f *Flags) ToConfigFlags(changed func(name string) bool) config.Flags {
	cf := config.Flags{
		ConfigFile:      f.ConfigFile,
		ResultsDir:      f.ResultsDir,
		MarkdownOut:     f.MarkdownOut,
		JSONOut:         f.JSONOut,
		Pattern:         f.Pattern,
		Suite:           f.Suite,
		MaxSignatureLen: f.MaxSignatureLen,
		Quiet:           f.Quiet,
		Verbose:         f.Verbose,
		TLS:             f.TLS,
		Ping:            f.Ping,
		ClusterFolder:   f.ClusterFolder,
	}
	if changed("normalize-numbers") {
		normalize := f.NormalizeNumbers
		cf.NormalizeNumbers = &normalize
	}
	return cf
}
