package aspen

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Theme supplies the base attribute defaults per shape name and the
// per-state style overrides that the state style resolver consults when
// an element has no override of its own.
type Theme struct {
	// Shapes maps a shape-type name to its default attributes, applied
	// beneath model styling by the shape builders.
	Shapes map[string]Attrs

	// States maps a state name to its style/animation declaration.
	States map[string]StateOption
}

// DefaultTheme returns the built-in theme. The returned value is a fresh
// copy; callers may mutate it freely.
func DefaultTheme() *Theme {
	return &Theme{
		Shapes: map[string]Attrs{
			"point":        {"r": 4.0, "fill": "#1890ff", "opacity": 0.95},
			"hollow-point": {"r": 4.0, "stroke": "#1890ff", "lineWidth": 1.0, "opacity": 0.95},
			"interval":     {"fill": "#1890ff", "opacity": 0.95},
			"line":         {"stroke": "#1890ff", "lineWidth": 2.0, "opacity": 1.0},
			"area":         {"fill": "#1890ff", "fillOpacity": 0.25, "stroke": "#1890ff", "lineWidth": 2.0},
		},
		States: map[string]StateOption{
			StateActive: {
				Style: map[string]StateStyle{"*": {Attrs: Attrs{"opacity": 1.0, "lineWidth": 2.0}}},
			},
			StateSelected: {
				Style: map[string]StateStyle{"*": {Attrs: Attrs{"stroke": "#000000", "lineWidth": 2.0}}},
			},
			StateInactive: {
				Style: map[string]StateStyle{"*": {Attrs: Attrs{"opacity": 0.3}}},
			},
		},
	}
}

// stateOption returns the theme's declaration for a state name.
func (t *Theme) stateOption(name string) (StateOption, bool) {
	opt, ok := t.States[name]
	return opt, ok
}

// --- YAML loading ---

// themeFile is the on-disk theme schema. Functions cannot travel through
// YAML, so file themes declare static state styles only; computed styles
// are attached programmatically after loading.
type themeFile struct {
	Shapes map[string]map[string]any `yaml:"shapes"`
	States map[string]stateFile      `yaml:"states" validate:"dive"`
}

type stateFile struct {
	Style      map[string]map[string]any `yaml:"style" validate:"required"`
	Animate    *animFile                 `yaml:"animate"`
	AnimateOff bool                      `yaml:"animateOff"`
}

type animFile struct {
	Duration float32 `yaml:"duration" validate:"gte=0"`
	Delay    float32 `yaml:"delay" validate:"gte=0"`
	Easing   string  `yaml:"easing" validate:"omitempty,easing"`
	Effect   string  `yaml:"effect" validate:"omitempty,oneof=fadeIn fadeOut"`
}

var (
	themeValidatorOnce sync.Once
	themeValidator     *validator.Validate
)

func themeValidatorInstance() *validator.Validate {
	themeValidatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("easing", func(fl validator.FieldLevel) bool {
			_, ok := easings[fl.Field().String()]
			return ok
		})
		themeValidator = v
	})
	return themeValidator
}

// LoadTheme parses and validates a YAML theme document.
func LoadTheme(data []byte) (*Theme, error) {
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("aspen: parse theme: %w", err)
	}
	if err := themeValidatorInstance().Struct(&tf); err != nil {
		return nil, fmt.Errorf("aspen: invalid theme: %w", err)
	}

	t := &Theme{
		Shapes: make(map[string]Attrs, len(tf.Shapes)),
		States: make(map[string]StateOption, len(tf.States)),
	}
	for name, attrs := range tf.Shapes {
		t.Shapes[name] = Attrs(attrs)
	}
	for name, sf := range tf.States {
		opt := StateOption{
			Style:      make(map[string]StateStyle, len(sf.Style)),
			AnimateOff: sf.AnimateOff,
		}
		for key, attrs := range sf.Style {
			opt.Style[key] = StateStyle{Attrs: Attrs(attrs)}
		}
		if sf.Animate != nil {
			opt.Animate = &AnimConfig{
				Duration: sf.Animate.Duration,
				Delay:    sf.Animate.Delay,
				Easing:   sf.Animate.Easing,
				Effect:   sf.Animate.Effect,
			}
		}
		t.States[name] = opt
	}
	return t, nil
}
