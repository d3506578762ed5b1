// Package config handles configuration loading for catalog-admin.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; the binary runs with
// no configuration file at all.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	api:
//	  base_url: "${CATALOG_API_BASE}"
//
// Syntax: ${VAR_NAME}
//
// The two API endpoint fields also fall back to CATALOG_API_BASE and
// CATALOG_API_PATH directly when left empty, then to literal defaults.
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	timers:
//	  page_notice: "3s"
//	  modal_notice: "3s"
//	  highlight: "2500ms"
//
// # Configuration Sections
//
// API endpoint:
//
//	api:
//	  base_url: "https://ec-course-api.hexschool.io/v2"
//	  path: "claudia1121"
//
// Session persistence:
//
//	session:
//	  token_file: "~/.config/catalog-admin/token.json"
//	  flag_file: "~/.config/catalog-admin/session"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
