package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ACCESSTWIN_"

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides file values with ACCESSTWIN_* variables. lookup is
// usually os.LookupEnv.
func ApplyEnv(cfg *FileConfig, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	envString(lookup, "THEMES_FILE", &cfg.Themes.File)
	envString(lookup, "STORE_PATH", &cfg.Store.Path)
	envString(lookup, "LOG_LEVEL", &cfg.Log.Level)
	envString(lookup, "LOG_FILE", &cfg.Log.File)
	if err := envInt(lookup, "PROMPT_MAX_TRACKING_LOGS", &cfg.Prompt.MaxTrackingLogs); err != nil {
		return err
	}
	if err := envInt(lookup, "PROMPT_MAX_NOTE_CHARS", &cfg.Prompt.MaxNoteChars); err != nil {
		return err
	}
	return nil
}

func envString(lookup func(string) (string, bool), key string, target **string) {
	v, ok := lookup(EnvPrefix + key)
	if !ok {
		return
	}
	v = strings.TrimSpace(v)
	*target = &v
}

func envInt(lookup func(string) (string, bool), key string, target **int) error {
	v, ok := lookup(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*target = &n
	return nil
}
