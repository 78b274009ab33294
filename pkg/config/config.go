package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up relative to the working directory.
const DefaultConfigFile = ".secreport.yaml"

const unknown = "unknown"

// Context carries the repository metadata stamped onto every report.
// Values come from the config file when present; CI environment variables
// take precedence field by field.
type Context struct {
	Repository string `yaml:"repository"`
	Branch     string `yaml:"branch"`
	Commit     string `yaml:"commit"`
}

// Load reads the config file at path. A missing file is not an error and
// yields an empty context.
func Load(path string) (Context, error) {
	var ctx Context

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ctx, nil
	}
	if err != nil {
		return ctx, err
	}

	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// Resolve fills each field independently: environment variable first, then
// the config file value, then the "unknown" sentinel. The commit is
// truncated to its first 8 characters.
func (c Context) Resolve() Context {
	out := Context{
		Repository: firstNonEmpty(os.Getenv("GITHUB_REPOSITORY"), c.Repository, unknown),
		Branch:     firstNonEmpty(os.Getenv("GITHUB_REF_NAME"), c.Branch, unknown),
		Commit:     firstNonEmpty(os.Getenv("GITHUB_SHA"), c.Commit, unknown),
	}
	if len(out.Commit) > 8 {
		out.Commit = out.Commit[:8]
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
