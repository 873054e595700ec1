package config

import "os"

// applyFallbacks fills in values viper's env binding does not cover,
// such as well-known provider environment variables.
func (c *Config) applyFallbacks() {
	if c.AI.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.AI.APIKey = key
		} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			c.AI.APIKey = key
		}
	}

	if c.AI.OCRModel == "" {
		c.AI.OCRModel = c.AI.Model
	}

	if c.Observability.ServiceInstance == "" {
		if host, err := os.Hostname(); err == nil {
			c.Observability.ServiceInstance = host
		} else {
			c.Observability.ServiceInstance = "unknown"
		}
	}
}
