package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Overlay tints the background image so foreground text stays readable.
type Overlay struct {
	Color   string  `mapstructure:"color"`
	Opacity float64 `mapstructure:"opacity"`
}

// Config holds the report and share-card appearance settings.
type Config struct {
	Title string `mapstructure:"title"`

	// Share card raster size, "WIDTHxHEIGHT".
	ImageSize string `mapstructure:"image_size"`

	BackgroundImage string  `mapstructure:"background_image"`
	BackgroundFit   string  `mapstructure:"background_fit"` // cover, contain or stretch
	BackgroundColor string  `mapstructure:"background_color"`
	Overlay         Overlay `mapstructure:"background_overlay"`

	AccentColor string `mapstructure:"accent_color"`
	SubColor    string `mapstructure:"sub_color"`
	TextColor   string `mapstructure:"text_color"`
	DimColor    string `mapstructure:"dim_color"`
}

// Load reads configuration from file and environment.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("xpec")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.SetDefault("title", "System Specification")
	viper.SetDefault("image_size", "1200x675")
	viper.SetDefault("background_image", "")
	viper.SetDefault("background_fit", "cover")
	viper.SetDefault("background_color", "#10141c")
	viper.SetDefault("background_overlay.color", "#10141c")
	viper.SetDefault("background_overlay.opacity", 0.55)
	viper.SetDefault("accent_color", "#5cc8ff")
	viper.SetDefault("sub_color", "#9ab")
	viper.SetDefault("text_color", "#e8ecf2")
	viper.SetDefault("dim_color", "#667")

	viper.SetEnvPrefix("XPEC")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.BackgroundFit {
	case "cover", "contain", "stretch":
	default:
		return fmt.Errorf("background_fit: unknown mode %q", c.BackgroundFit)
	}
	if c.Overlay.Opacity < 0 || c.Overlay.Opacity > 1 {
		return fmt.Errorf("background_overlay.opacity: %v out of range [0,1]", c.Overlay.Opacity)
	}
	if _, _, err := c.Size(); err != nil {
		return err
	}
	return nil
}

// Size parses ImageSize into pixel dimensions.
func (c *Config) Size() (width, height int, err error) {
	n, err := fmt.Sscanf(c.ImageSize, "%dx%d", &width, &height)
	if err != nil || n != 2 || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("image_size: want WIDTHxHEIGHT, got %q", c.ImageSize)
	}
	return width, height, nil
}
