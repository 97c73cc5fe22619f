package icon

import (
	"fmt"
	"os"

	"ravem-box/pkg/logger"
)

type Config struct {
	// Paths maps an icon name (icon-camera, icon-warning...) to an image file.
	Paths map[string]string
}

type Set struct {
	cfg *Config
	log *logger.Zerolog
}

func NewIconSet(cfg *Config, log *logger.Zerolog) *Set {
	return &Set{
		cfg: cfg,
		log: log,
	}
}

// Get returns the image file of an icon. An unmapped icon yields "" and no
// error, notifications then use the system default.
func (s *Set) Get(icon string) (string, error) {
	path, ok := s.cfg.Paths[icon]
	if !ok || len(path) == 0 {
		return "", nil
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("icon %s: %w", icon, err)
	}

	s.log.Debug().Msgf("icon %s -> %s", icon, path)

	return path, nil
}
