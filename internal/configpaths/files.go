package configpaths

import (
	"os"
	"path/filepath"
)

// BaseName is the file name, without extension, of configuration files
// discovered in the working directory.
const BaseName = "tmplgen"

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	wd, _ := os.Getwd()
	return candidatePaths(userPath, wd)
}

func candidatePaths(userPath, dir string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	add(&jsonPaths, filepath.Join(dir, BaseName+".json"))
	add(&yamlPaths, filepath.Join(dir, BaseName+".yaml"))
	add(&yamlPaths, filepath.Join(dir, BaseName+".yml"))
	add(&tomlPaths, filepath.Join(dir, BaseName+".toml"))
	return
}
