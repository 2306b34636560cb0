package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// seedFile is the YAML document used to bootstrap guild settings
type seedFile struct {
	Guilds []domain.GuildConfig `yaml:"guilds"`
}

// LoadSeedFile reads guild settings from a YAML file. Durations use Go
// syntax ("60s", "1h").
func LoadSeedFile(path string) ([]domain.GuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadSeedFailed, err)
	}

	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(ErrMsgDecodeSeedFailed, err)
	}
	return doc.Guilds, nil
}
