package config

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

// Property names of the detector's configuration surface.
const (
	PropLabelFile      = "label-file"
	PropScoreThreshold = "score-threshold"
	PropSizeThreshold  = "size-threshold"
)

// EnvPrefix prefixes environment overrides, e.g. SSD_SCORE_THRESHOLD.
const EnvPrefix = "SSD_"

// Properties is the externally exposed configuration of the detector.
type Properties struct {
	LabelFile      string  `koanf:"label-file" yaml:"label-file"`
	ScoreThreshold float32 `koanf:"score-threshold" yaml:"score-threshold"`
	SizeThreshold  float32 `koanf:"size-threshold" yaml:"size-threshold"`
}

// LoadProperties reads detector properties from defaults, an optional YAML
// file and SSD_ prefixed environment variables, in increasing precedence.
//
// Arguments:
//   - path: YAML file to read. Empty skips the file.
//
// Returns:
//   - Properties: The merged properties.
//   - error: An error if the file cannot be parsed.
func LoadProperties(path string) (Properties, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		PropScoreThreshold: DefaultScoreThreshold,
		PropSizeThreshold:  DefaultSizeThreshold,
	}, "."), nil); err != nil {
		return Properties{}, errors.Wrap(err, "failed to load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Properties{}, errors.Wrapf(err, "failed to load %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil); err != nil {
		return Properties{}, errors.Wrap(err, "failed to load environment")
	}

	var props Properties
	if err := k.Unmarshal("", &props); err != nil {
		return Properties{}, errors.Wrap(err, "failed to decode properties")
	}

	return props, nil
}

// Apply pushes props through the cell's validating setters. Thresholds are
// applied first; a label file is only loaded when one is named.
//
// Returns:
//   - error: The first setter error. Earlier settings stay applied.
func (c *Cell) Apply(props Properties) error {
	if err := c.SetScoreThreshold(props.ScoreThreshold); err != nil {
		return err
	}
	if err := c.SetSizeThreshold(props.SizeThreshold); err != nil {
		return err
	}
	if props.LabelFile != "" {
		return c.SetLabelFile(props.LabelFile)
	}
	return nil
}
