package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fresneltrace/fresnel/pkg/core"
)

// Config is the on-disk scene description. Every field group matches one
// section of the JSON document.
type Config struct {
	Image           ImageCfg    `json:"image"`
	Camera          CameraCfg   `json:"camera"`
	Sampler         SamplerCfg  `json:"sampler"`
	BackgroundColor core.Color  `json:"background_color"`
	Background      string      `json:"background,omitempty"` // "solid" or "gradient"
	SceneList       []ObjectCfg `json:"scene_list"`
}

// ImageCfg names the output file and its dimensions.
type ImageCfg struct {
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// CameraCfg is the JSON form of the thin-lens camera.
type CameraCfg struct {
	LookFrom      core.Point3 `json:"look_from"`
	LookAt        core.Point3 `json:"look_at"`
	Up            core.Vec3   `json:"up"`
	VerticalFov   float64     `json:"vertical_fov"`
	AspectRatio   float64     `json:"aspect_ratio"`
	Aperture      float64     `json:"aperture"`
	FocusDistance float64     `json:"focus_distance"`
	TimeMin       float64     `json:"time_min,omitempty"`
	TimeMax       float64     `json:"time_max,omitempty"`
}

// SamplerCfg sets samples per pixel axis and the bounce budget.
type SamplerCfg struct {
	N        int `json:"n"`
	MaxDepth int `json:"max_depth"`
}

// LoadConfig reads and validates a scene config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a scene config document. Unknown fields anywhere in
// the document are fatal, as are missing or ambiguous variant keys.
func ParseConfig(data []byte) (*Config, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the config as indented JSON.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func (c *Config) applyDefaults() {
	if c.Image.Filename == "" {
		c.Image.Filename = "out.png"
	}
	if c.Sampler.N == 0 {
		c.Sampler.N = 4
	}
	if c.Sampler.MaxDepth == 0 {
		c.Sampler.MaxDepth = 16
	}
	if c.Background == "" {
		c.Background = "solid"
	}
}

// Validate reports the first fatal problem with the config.
func (c *Config) Validate() error {
	if c.Image.Width < 1 || c.Image.Height < 1 {
		return fmt.Errorf("image dimensions must be at least 1x1, got %dx%d", c.Image.Width, c.Image.Height)
	}
	if c.Sampler.N < 1 {
		return fmt.Errorf("sampler n must be at least 1, got %d", c.Sampler.N)
	}
	if c.Sampler.MaxDepth < 1 {
		return fmt.Errorf("sampler max_depth must be at least 1, got %d", c.Sampler.MaxDepth)
	}
	if c.Background != "solid" && c.Background != "gradient" {
		return fmt.Errorf("background must be %q or %q, got %q", "solid", "gradient", c.Background)
	}
	if c.Camera.VerticalFov <= 0 || c.Camera.VerticalFov >= 180 {
		return fmt.Errorf("camera vertical_fov must be in (0, 180), got %v", c.Camera.VerticalFov)
	}
	if c.Camera.AspectRatio <= 0 {
		return fmt.Errorf("camera aspect_ratio must be positive, got %v", c.Camera.AspectRatio)
	}
	if c.Camera.Aperture < 0 {
		return fmt.Errorf("camera aperture must not be negative, got %v", c.Camera.Aperture)
	}
	if c.Camera.FocusDistance <= 0 {
		return fmt.Errorf("camera focus_distance must be positive, got %v", c.Camera.FocusDistance)
	}
	if c.Camera.TimeMax < c.Camera.TimeMin {
		return fmt.Errorf("camera time_max %v is before time_min %v", c.Camera.TimeMax, c.Camera.TimeMin)
	}

	w, ok := c.Camera.LookFrom.Subtract(c.Camera.LookAt).Unit()
	if !ok {
		return fmt.Errorf("camera look_from equals look_at")
	}
	if _, ok := c.Camera.Up.Cross(w).Unit(); !ok {
		return fmt.Errorf("camera up is parallel to the view direction")
	}
	return nil
}
