package term

import (
	"io"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

const (
	defaultFrameInterval = 100 * time.Millisecond
	defaultMaxCommits    = 10
	defaultAvatarColumns = 24
)

// Config represents terminal host configuration
type Config struct {
	FrameInterval time.Duration `yaml:"frame_interval" env:"TERM_FRAME_INTERVAL"`
	MaxCommits    int           `yaml:"max_commits" env:"TERM_MAX_COMMITS"`
	AvatarColumns int           `yaml:"avatar_columns" env:"TERM_AVATAR_COLUMNS"`
	NoAltScreen   bool          `yaml:"no_alt_screen" env:"TERM_NO_ALT_SCREEN"`
	LogFile       string        `yaml:"log_file" env:"TERM_LOG_FILE"`
}

func (c *Config) PrepareAndValidate() error {
	c.FrameInterval = lang.Check(c.FrameInterval, defaultFrameInterval)
	c.MaxCommits = lang.Check(c.MaxCommits, defaultMaxCommits)
	c.AvatarColumns = lang.Check(c.AvatarColumns, defaultAvatarColumns)
	return nil
}

// Logger returns the logger configuration for the time the panel is drawn.
// Console output would break the alternate screen, so logs go to LogFile
// or nowhere. The returned closer is nil when no file is opened.
func (c Config) Logger(level string) (logze.Config, io.Closer, error) {
	if c.LogFile == "" {
		return logze.C().WithDisabled(), nil, nil
	}

	cfg, closer, err := logze.C().WithLevel(level).WithFile(c.LogFile, 0o600)
	if err != nil {
		return logze.Config{}, nil, errm.Wrap(err, "failed to open log file")
	}
	return cfg, closer, nil
}
