package server

import (
	"crypto/tls"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultAddress    = "0.0.0.0:8080"
	defaultTimeout    = 30 * time.Second
	defaultMaxCommits = 20
)

// Config represents HTTP host configuration
type Config struct {
	Address    string        `yaml:"address" env:"SERVER_ADDRESS"`
	Timeout    time.Duration `yaml:"timeout" env:"SERVER_TIMEOUT"`
	MaxCommits int           `yaml:"max_commits" env:"SERVER_MAX_COMMITS"`

	CertFilePath string `yaml:"cert_file_path" env:"CERT_FILE_PATH"`
	KeyFilePath  string `yaml:"key_file_path" env:"KEY_FILE_PATH"`
	EnableHTTPS  bool   `yaml:"enable_https" env:"SERVER_ENABLE_HTTPS"`
}

func (cfg *Config) PrepareAndValidate() error {
	cfg.Address = lang.Check(cfg.Address, defaultAddress)
	cfg.Timeout = lang.Check(cfg.Timeout, defaultTimeout)
	cfg.MaxCommits = lang.Check(cfg.MaxCommits, defaultMaxCommits)

	if cfg.EnableHTTPS && (cfg.CertFilePath == "" || cfg.KeyFilePath == "") {
		return errm.New("cert_file_path and key_file_path must be set when enable_https is true")
	}

	return nil
}

func (cfg Config) certificate() (tls.Certificate, error) {
	if !cfg.EnableHTTPS {
		return tls.Certificate{}, nil
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertFilePath, cfg.KeyFilePath)
	if err != nil {
		return tls.Certificate{}, errm.Wrap(err, "failed to load certificate and key pair")
	}

	return cert, nil
}
