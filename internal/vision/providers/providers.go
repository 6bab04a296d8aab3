// Package providers registers the built-in vision provider factories.
package providers

import (
	"sync"

	"equitylens/internal/config"
	"equitylens/internal/port"
	"equitylens/internal/vision"
	"equitylens/internal/vision/claude"
	"equitylens/internal/vision/gemini"
	"equitylens/internal/vision/openai"
)

var once sync.Once

// RegisterAll makes claude, openai and gemini available to vision.NewClient.
func RegisterAll() {
	once.Do(func() {
		vision.RegisterProvider("claude", func(cfg *config.VisionProviderConfig) (port.VisionClient, error) {
			return claude.NewClient(cfg), nil
		})
		vision.RegisterProvider("openai", func(cfg *config.VisionProviderConfig) (port.VisionClient, error) {
			return openai.NewClient(cfg), nil
		})
		vision.RegisterProvider("gemini", func(cfg *config.VisionProviderConfig) (port.VisionClient, error) {
			c, err := gemini.NewClient(cfg)
			if err != nil {
				return nil, err
			}
			return c, nil
		})
	})
}
