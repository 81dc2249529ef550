// Package env loads forge settings from an optional .forge.env file.
package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FileName is the env file forge looks for in the working directory.
const FileName = ".forge.env"

// LoadForgeEnv loads dir's .forge.env file into the process environment.
// Variables already set in the environment win over file values. A missing
// file is not an error.
func LoadForgeEnv(dir string) error {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file %q: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}
