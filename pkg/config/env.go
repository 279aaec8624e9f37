package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the data and figure directories.
const (
	EnvDataDir   = "PVLAB_DATA_DIR"
	EnvFigureDir = "PVLAB_FIGURE_DIR"
)

// LoadEnvFile loads variables from a dotenv file into the process
// environment. Variables that are already set win, and a missing file is not
// an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func applyEnv(c *ConfigData) {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvFigureDir); v != "" {
		c.FigureDir = v
	}
}
