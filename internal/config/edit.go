package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// ErrKeyNotFound is returned by GetValue for keys absent from the file
var ErrKeyNotFound = errors.New("key not found")

// secretKeys are masked when printed
var secretKeys = map[string]bool{
	"llm.api_key":  true,
	"github.token": true,
}

func readFile(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}

// GetValue returns a single value from the config file, masking secrets
func GetValue(path, key string) (string, error) {
	v, err := readFile(path)
	if err != nil {
		return "", err
	}

	value := v.Get(key)
	if value == nil {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if secretKeys[strings.ToLower(key)] {
		return Secret(fmt.Sprint(value)).String(), nil
	}
	return fmt.Sprint(value), nil
}

// SetValue writes key=value into the config file, creating it if needed
func SetValue(path, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
	}

	v, err := readFile(path)
	if err != nil {
		return err
	}

	// Handle array values (comma-separated)
	if strings.Contains(value, ",") {
		v.Set(key, strings.Split(value, ","))
	} else {
		v.Set(key, value)
	}

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Describe lists every key in the config file as "key = value", secrets masked
func Describe(path string) (string, error) {
	v, err := readFile(path)
	if err != nil {
		return "", err
	}

	keys := v.AllKeys()
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		value := fmt.Sprint(v.Get(k))
		if secretKeys[k] {
			value = Secret(value).String()
		}
		sb.WriteString(fmt.Sprintf("%s = %s\n", k, value))
	}
	return sb.String(), nil
}
