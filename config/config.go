package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration loaded at startup.
type Config struct {
	// Listen is the address the web server binds to.
	Listen string `yaml:"listen"`
	// WebDataDir holds the static files served at /.
	WebDataDir string `yaml:"web_data_dir"`
	// DefaultMix is the crossfade duration in seconds used for animation
	// pairs without an explicit mix.
	DefaultMix float32 `yaml:"default_mix"`
	// PoseStreamFPS caps the websocket pose stream rate.
	PoseStreamFPS int `yaml:"pose_stream_fps"`
	// SkeletonScale scales the loaded skeleton on both axes.
	SkeletonScale float32 `yaml:"skeleton_scale"`
}

var current = Config{
	Listen:        ":8000",
	WebDataDir:    "web/data",
	DefaultMix:    0.2,
	PoseStreamFPS: 30,
	SkeletonScale: 1,
}

func Get() Config {
	return current
}

func Set(c Config) {
	current = c
}

// Load reads a yaml config file over the defaults.
func Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "Cannot read config %q", path)
	}
	c := current
	if err := yaml.Unmarshal(data, &c); err != nil {
		return errors.Wrapf(err, "Cannot parse config %q", path)
	}
	current = c
	return nil
}
