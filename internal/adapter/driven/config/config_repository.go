package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/metrics"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/repository"
	"github.com/diillson/paidmedia-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implements ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository creates a new ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile loads a TOML, YAML or JSON configuration file.
// Relative data paths are resolved against the directory of the file.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	baseDir := filepath.Dir(filePath)
	config.DataSource = resolvePath(baseDir, config.DataSource)
	config.TargetsFile = resolvePath(baseDir, config.TargetsFile)
	config.Database = resolvePath(baseDir, config.Database)
	config.Thresholds = config.Thresholds.WithDefaults()
	for i, t := range config.ReportType {
		config.ReportType[i] = strings.ToLower(strings.TrimSpace(t))
	}

	return &config, nil
}

func validate(c *types.Config) error {
	if c.GroupBy != "" {
		if _, ok := entity.ParseGroupBy(c.GroupBy); !ok {
			return types.ErrInvalidGroupBy
		}
	}
	if c.Direction != "" {
		if _, ok := metrics.ParseDirection(c.Direction); !ok {
			return types.ErrInvalidDirection
		}
	}
	if c.SortKey != "" && !metrics.IsSortKey(c.SortKey) {
		return fmt.Errorf("%w: %s", types.ErrInvalidSortKey, c.SortKey)
	}
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", c.Days)
	}
	return nil
}

// resolvePath leaves empty, absolute and s3:// paths untouched.
func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "s3://") || p == ":memory:" {
		return p
	}
	return filepath.Join(baseDir, p)
}
