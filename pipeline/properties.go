package pipeline

import (
	"github.com/nvr-ai/go-ssd/config"
	"github.com/pkg/errors"
)

// SetProperty sets a property by name.
//
// Arguments:
//   - name: One of config.PropLabelFile, config.PropScoreThreshold or
//     config.PropSizeThreshold.
//   - value: A string for the label file; a float32 or float64 for thresholds.
//
// Returns:
//   - error: ErrUnknownProperty, ErrInvalidValue, config.ErrOutOfRange or the
//     label file load error. The previous value is kept on error.
func (e *Element) SetProperty(name string, value any) error {
	switch name {
	case config.PropLabelFile:
		path, ok := value.(string)
		if !ok {
			return errors.Wrapf(ErrInvalidValue, "%s wants a string, got %T", name, value)
		}
		return e.cell.SetLabelFile(path)
	case config.PropScoreThreshold:
		v, err := toFloat32(name, value)
		if err != nil {
			return err
		}
		return e.cell.SetScoreThreshold(v)
	case config.PropSizeThreshold:
		v, err := toFloat32(name, value)
		if err != nil {
			return err
		}
		return e.cell.SetSizeThreshold(v)
	default:
		return errors.Wrap(ErrUnknownProperty, name)
	}
}

// Property returns the current value of a property.
func (e *Element) Property(name string) (any, error) {
	th := e.cell.Load()
	switch name {
	case config.PropLabelFile:
		return th.LabelFile, nil
	case config.PropScoreThreshold:
		return th.ScoreThreshold, nil
	case config.PropSizeThreshold:
		return th.SizeThreshold, nil
	default:
		return nil, errors.Wrap(ErrUnknownProperty, name)
	}
}

// Configure loads properties from an optional YAML file and the environment
// and applies them.
//
// Arguments:
//   - path: YAML file, or empty for environment and defaults only.
//
// Returns:
//   - error: A load error or the first rejected setting.
func (e *Element) Configure(path string) error {
	props, err := config.LoadProperties(path)
	if err != nil {
		return err
	}
	return e.cell.Apply(props)
}

func toFloat32(name string, value any) (float32, error) {
	switch v := value.(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	default:
		return 0, errors.Wrapf(ErrInvalidValue, "%s wants a float, got %T", name, value)
	}
}
