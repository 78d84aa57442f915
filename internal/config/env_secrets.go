package config

import (
	"context"
	"fmt"
	"os"
)

// envSecrets reads secrets from plain environment variables
type envSecrets struct{}

func (envSecrets) GetSecretString(_ context.Context, _ string, fallbackEnvVar string) (string, error) {
	if value := os.Getenv(fallbackEnvVar); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("environment variable %s is not set", fallbackEnvVar)
}
