package model

import "time"

// ProviderConfig is the part of provider configuration the event sources need
type ProviderConfig struct {
	BaseURL    string
	APIVersion string
	UserAgent  string
	Timeout    time.Duration
}
