package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

var (
	DefaultDeviceSizes = []int{640, 750, 828, 1080, 1200, 1920, 2048, 3840}
	DefaultImageSizes  = []int{16, 32, 48, 64, 96, 128, 256, 384}
)

const (
	DefaultQuality = 75
	DefaultBaseURL = "/_next/image"
)

// ImageConfig configures the rendering pipeline.
type ImageConfig struct {
	DeviceSizes  []int
	ImageSizes   []int
	Quality      int
	BaseURL      string
	Template     string
	Granularity  ParityGranularity
	CacheEnabled bool
}

func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		DeviceSizes:  DefaultDeviceSizes,
		ImageSizes:   DefaultImageSizes,
		Quality:      DefaultQuality,
		BaseURL:      DefaultBaseURL,
		Granularity:  ParityShape,
		CacheEnabled: true,
	}
}

// NewImageConfigFromViper reads the image settings from viper, falling back to the defaults for keys that
// are not set.
func NewImageConfigFromViper() (ImageConfig, error) {
	cfg := DefaultImageConfig()

	if viper.IsSet("images.device_sizes") {
		cfg.DeviceSizes = viper.GetIntSlice("images.device_sizes")
	}
	if viper.IsSet("images.image_sizes") {
		cfg.ImageSizes = viper.GetIntSlice("images.image_sizes")
	}
	if viper.IsSet("images.quality") {
		cfg.Quality = viper.GetInt("images.quality")
	}
	if viper.IsSet("image_service.base_url") {
		cfg.BaseURL = viper.GetString("image_service.base_url")
	}
	if viper.IsSet("cache.enabled") {
		cfg.CacheEnabled = viper.GetBool("cache.enabled")
	}
	cfg.Template = viper.GetString("image_service.template")

	if viper.IsSet("parity.granularity") {
		granularity, err := ParseParityGranularity(viper.GetString("parity.granularity"))
		if err != nil {
			return ImageConfig{}, err
		}
		cfg.Granularity = granularity
	}

	if len(cfg.DeviceSizes) == 0 {
		return ImageConfig{}, errors.New("images.device_sizes must not be empty")
	}

	if cfg.Quality < 1 || cfg.Quality > 100 {
		return ImageConfig{}, fmt.Errorf("images.quality must be between 1 and 100, got %d", cfg.Quality)
	}

	return cfg, nil
}
