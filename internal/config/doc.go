// Package config provides configuration management for the catalog photo
// downloader.
//
// This package handles:
//   - Default configuration values matching the production catalog
//   - Loading and saving settings from YAML files
//   - Overrides from PHOTO_DL_* environment variables (and .env files)
//   - Validation before a run starts
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Catalog: https://silasvitera.up.railway.app/api/products
//	// Images:  https://silasvitera.up.railway.app/api/image/<name>
//	// Saved to the current directory, no timeout
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/photo-dl.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
//	_ = godotenv.Load()       // optional .env file
//	settings.ApplyEnv()       // PHOTO_DL_OUTPUT=/srv/photos etc.
//	err := settings.Validate()
package config
