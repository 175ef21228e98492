package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

const (
	DefaultCatalogURL   = "https://silasvitera.up.railway.app/api/products"
	DefaultImageBaseURL = "https://silasvitera.up.railway.app/api/image/"
	DefaultChunkSize    = 8192
)

// Settings holds all configuration options.
type Settings struct {
	// Endpoints
	CatalogURL   string `yaml:"catalog_url"`
	ImageBaseURL string `yaml:"image_base_url"`
	UserAgent    string `yaml:"user_agent"`

	// Timeout applies to every request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Download settings
	DownloadDir       string `yaml:"download_dir"`
	ChunkSize         int    `yaml:"chunk_size"`
	SanitizeFileNames bool   `yaml:"sanitize_file_names"`
	InspectImages     bool   `yaml:"inspect_images"`

	// Storage settings
	Storage string   `yaml:"storage"` // local, s3
	S3      S3Config `yaml:"s3"`
}

// S3Config configures the S3 storage backend.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CatalogURL:   DefaultCatalogURL,
		ImageBaseURL: DefaultImageBaseURL,
		Timeout:      0,
		DownloadDir:  "",
		ChunkSize:    DefaultChunkSize,
		Storage:      StorageLocal,
	}
}

// Load reads settings from a YAML file.
//
// Missing keys keep their default values. A missing file yields the
// defaults. JSON files load as well.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from PHOTO_DL_* environment variables.
//
// Unset variables leave the current value untouched. Malformed numeric or
// boolean values are reported as an error.
func (s *Settings) ApplyEnv() error {
	strVars := map[string]*string{
		"PHOTO_DL_CATALOG_URL":          &s.CatalogURL,
		"PHOTO_DL_IMAGE_BASE_URL":       &s.ImageBaseURL,
		"PHOTO_DL_USER_AGENT":           &s.UserAgent,
		"PHOTO_DL_OUTPUT":               &s.DownloadDir,
		"PHOTO_DL_STORAGE":              &s.Storage,
		"PHOTO_DL_S3_BUCKET":            &s.S3.Bucket,
		"PHOTO_DL_S3_PREFIX":            &s.S3.Prefix,
		"PHOTO_DL_S3_REGION":            &s.S3.Region,
		"PHOTO_DL_S3_ENDPOINT":          &s.S3.Endpoint,
		"PHOTO_DL_S3_ACCESS_KEY_ID":     &s.S3.AccessKeyID,
		"PHOTO_DL_S3_SECRET_ACCESS_KEY": &s.S3.SecretAccessKey,
	}
	for key, dst := range strVars {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("PHOTO_DL_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PHOTO_DL_TIMEOUT: %w", err)
		}
		s.Timeout = d
	}
	if v, ok := os.LookupEnv("PHOTO_DL_CHUNK_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PHOTO_DL_CHUNK_SIZE: %w", err)
		}
		s.ChunkSize = n
	}

	boolVars := map[string]*bool{
		"PHOTO_DL_SANITIZE":          &s.SanitizeFileNames,
		"PHOTO_DL_INSPECT_IMAGES":    &s.InspectImages,
		"PHOTO_DL_S3_USE_PATH_STYLE": &s.S3.UsePathStyle,
	}
	for key, dst := range boolVars {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	return nil
}

// Validate checks the settings are usable for a run.
func (s *Settings) Validate() error {
	var errs []error

	if err := validateURL("catalog_url", s.CatalogURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("image_base_url", s.ImageBaseURL); err != nil {
		errs = append(errs, err)
	}
	if s.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk_size must be positive, got %d", s.ChunkSize))
	}
	if s.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", s.Timeout))
	}

	switch s.Storage {
	case StorageLocal:
	case StorageS3:
		if s.S3.Bucket == "" {
			errs = append(errs, errors.New("s3.bucket is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q (want %s or %s)", s.Storage, StorageLocal, StorageS3))
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", field, raw)
	}
	return nil
}
