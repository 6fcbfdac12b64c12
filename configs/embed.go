// Package configs provides the embedded configuration templates for promptdex.
//
// Templates are embedded at build time so `promptdex config init` works from
// any distribution. Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults (config.NewConfig)
//  2. User config (~/.config/promptdex/config.yaml)
//  3. Project config (.promptdex.yaml)
//  4. Environment variables (PROMPTDEX_*)
package configs

import _ "embed"

// UserConfigTemplate is written by `promptdex config init` to the user config path.
// It holds machine-wide settings such as the listen address and log level.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written by `promptdex config init --project`
// to .promptdex.yaml in the working directory.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
