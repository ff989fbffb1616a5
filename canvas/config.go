package canvas

import (
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/specht/pixelflow-canvas/pfclient"
	"gopkg.in/yaml.v3"
)

// Config describes a canvas to Open. Zero values fall back to the
// defaults in DefaultConfig.
type Config struct {
	// Address is host:port for TCP, or a ws:// or wss:// URL.
	Address string `yaml:"address"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	ColorMode   string `yaml:"color_mode"`   // rgb or palette
	AdvanceMode string `yaml:"advance_mode"` // right or down
	DrawMode    string `yaml:"draw_mode"`    // direct or buffered

	// MaxFPS caps how often EnsureMaxFPS lets a caller through. 0 disables pacing.
	MaxFPS float64 `yaml:"max_fps,omitempty"`

	DialTimeout time.Duration `yaml:"dial_timeout,omitempty"`

	// Record, when set, names a file that receives a copy of every frame.
	Record string `yaml:"record,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Address:     pfclient.DefaultAddress,
		Width:       pfclient.DefaultWidth,
		Height:      pfclient.DefaultHeight,
		ColorMode:   "rgb",
		AdvanceMode: "right",
		DrawMode:    "direct",
		DialTimeout: 5 * time.Second,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Annotatef(err, "could not read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "could not decode config %s", path)
	}
	return cfg.normalize()
}

// normalize fills unset fields from DefaultConfig, clamps recoverable
// values with a warning and rejects the rest.
func (c Config) normalize() (Config, error) {
	def := DefaultConfig()
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.ColorMode == "" {
		c.ColorMode = def.ColorMode
	}
	if c.AdvanceMode == "" {
		c.AdvanceMode = def.AdvanceMode
	}
	if c.DrawMode == "" {
		c.DrawMode = def.DrawMode
	}

	if c.MaxFPS < 0 {
		log.Warningf("[%s] Max FPS %g requested, but it cannot be negative. Disabling pacing instead.", c.Address, c.MaxFPS)
		c.MaxFPS = 0
	}
	if c.DialTimeout < 0 {
		log.Warningf("[%s] Dial timeout %s requested, but it cannot be negative. Using %s instead.", c.Address, c.DialTimeout, def.DialTimeout)
		c.DialTimeout = def.DialTimeout
	}

	if err := validateSize(c.Width, c.Height); err != nil {
		return c, err
	}
	if _, _, _, err := c.modes(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) modes() (pfclient.ColorMode, pfclient.AdvanceMode, DrawMode, error) {
	colorMode, err := pfclient.ParseColorMode(c.ColorMode)
	if err != nil {
		return 0, 0, 0, err
	}
	advanceMode, err := pfclient.ParseAdvanceMode(c.AdvanceMode)
	if err != nil {
		return 0, 0, 0, err
	}
	drawMode, err := ParseDrawMode(c.DrawMode)
	if err != nil {
		return 0, 0, 0, err
	}
	return colorMode, advanceMode, drawMode, nil
}
