package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// LoadFile builds a koanf store from a YAML file, layered with
// ELASTIC_OTEL_-prefixed environment variables. It is a convenience for
// callers who want a ready-made structured source; Resolve itself accepts
// any koanf store. A missing file is not an error and yields an env-only
// store.
func LoadFile(path string) (*koanf.Koanf, error) {
	var content []byte
	if info, err := os.Stat(path); err == nil {
		if info.Size() > maxConfigFileSize {
			return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
		}
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return LoadBytes(content)
}

// LoadBytes builds a koanf store from raw YAML, layered with
// ELASTIC_OTEL_-prefixed environment variables. Environment entries land
// under the same elastic.opentelemetry.* namespace as the file keys:
//
//	ELASTIC_OTEL_FILE_LOG_DIRECTORY -> elastic.opentelemetry.file_log_directory
func LoadBytes(content []byte) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := k.Load(env.Provider("ELASTIC_OTEL_", ".", func(s string) string {
		field := strings.ToLower(strings.TrimPrefix(s, "ELASTIC_OTEL_"))
		return "elastic.opentelemetry." + field
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return k, nil
}
