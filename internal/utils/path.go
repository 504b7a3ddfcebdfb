package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates hanseg's config file and dictionary text file
// relative to the running executable and the platform config dir.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver determines the executable's location and the
// platform-appropriate config directory.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  execDir,
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "hanseg")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "hanseg")
		}
		return filepath.Join(homeDir, ".config", "hanseg")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "hanseg")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "hanseg")
	default:
		return filepath.Join(homeDir, ".hanseg")
	}
}

// GetDictPath resolves the dictionary text file path, trying the
// user-specified path first, then a few conventional fallbacks.
func (pr *PathResolver) GetDictPath(userSpecifiedPath string) string {
	if userSpecifiedPath != "" {
		if filepath.IsAbs(userSpecifiedPath) {
			return userSpecifiedPath
		}
		if cwd, err := os.Getwd(); err == nil {
			candidate := filepath.Join(cwd, userSpecifiedPath)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		return filepath.Join(pr.executableDir, userSpecifiedPath)
	}
	return filepath.Join(pr.configDir, "dict.txt")
}

// GetConfigPath returns the full config file path, ensuring the
// config directory exists and falling back to the home directory or
// temp dir if it's not writable.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureConfigDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	for _, dir := range []string{
		filepath.Join(pr.homeDir, ".hanseg"),
		filepath.Join(os.TempDir(), "hanseg"),
		pr.executableDir,
	} {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

func (pr *PathResolver) ensureConfigDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Config directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}

// GetExecutableDir returns the directory containing the executable.
func (pr *PathResolver) GetExecutableDir() string { return pr.executableDir }

// GetConfigDir returns the resolved config directory.
func (pr *PathResolver) GetConfigDir() string { return pr.configDir }

// ResolveRelativePath resolves relativePath against the executable's
// directory, leaving absolute paths untouched.
func (pr *PathResolver) ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(pr.executableDir, relativePath)
}
