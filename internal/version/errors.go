package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem during file read.
type SchemaVersionError struct {
	FileType    string // "config"
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "config/2")
	Expected    string // What was expected (e.g., "config/1")
	MinRequired string // Minimum swatch version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"%s schema version %s requires swatch >= %s (file: %s, supports up to: %s)",
			e.FileType, e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf(
			"%s has no schema version (file: %s). Add swatch_schema = %q.",
			e.FileType, e.FilePath, e.Expected,
		)
	}
	return fmt.Sprintf(
		"%s has invalid schema version: found %s, expected %s (file: %s)",
		e.FileType, e.Found, e.Expected, e.FilePath,
	)
}

// MissingConfigSchema creates an error for a config file without swatch_schema.
func MissingConfigSchema(path string) error {
	return &SchemaVersionError{
		FileType: "config",
		FilePath: path,
		Found:    "missing",
		Expected: CurrentConfigSchema(),
	}
}

// InvalidConfigSchema creates an error for a config with an unsupported schema.
func InvalidConfigSchema(path, found string) error {
	e := &SchemaVersionError{
		FileType: "config",
		FilePath: path,
		Found:    found,
		Expected: CurrentConfigSchema(),
	}
	// A newer schema means the user needs a newer swatch
	if v, err := ParseConfigVersion(found); err == nil && v > CurrentConfigVersion {
		if minVersion, ok := MinSwatchVersion[found]; ok {
			e.MinRequired = minVersion
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
