package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are the .env locations tried by LoadEnv, in order.
var EnvFiles = []string{".env", filepath.Join("..", ".env")}

// LoadEnv loads the first existing .env file into the process environment
// without overriding variables that are already set. It returns the file
// it loaded, or "" when none exists.
func LoadEnv() (string, error) {
	for _, candidate := range EnvFiles {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return candidate, err
		}
		return candidate, nil
	}
	return "", nil
}
