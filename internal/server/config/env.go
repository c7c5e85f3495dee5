package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays AUTHKEEPER_* environment variables onto config. When
// dotenv names an existing file its variables are loaded first; variables
// already set in the process environment win over the file.
func parseEnv(config *Config, dotenv string) {
	if dotenv != "" && fileExists(dotenv) {
		if err := godotenv.Load(dotenv); err != nil {
			panic(err)
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
