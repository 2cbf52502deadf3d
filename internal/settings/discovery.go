package settings

import (
	"os"
	"path/filepath"
)

// DiscoveryOptions configures where the settings file is searched for
type DiscoveryOptions struct {
	// Base name of the settings file, with extension
	Name string

	// Environment variable holding an explicit path
	EnvVar string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns the search used by the indbios command
func DefaultDiscoveryOptions() DiscoveryOptions {
	return DiscoveryOptions{
		Name:          AppName + ".toml",
		EnvVar:        EnvPrefix + "SETTINGS",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// Discover returns the settings file to use. An explicit path wins, then the
// environment variable, then the first existing file on the search path.
// It returns "" when nothing is found, which is not an error.
func Discover(explicit string, opts DiscoveryOptions) string {
	if explicit != "" {
		return explicit
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(AppName)...)
	}

	for _, dir := range searchPaths {
		path := filepath.Join(dir, opts.Name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	return ""
}

// xdgConfigPaths returns XDG-compliant config search paths
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName))
	}

	return paths
}
