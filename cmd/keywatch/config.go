package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	. "github.com/JaMo42/keystream/common"
	"github.com/JaMo42/keystream/util"
)

type General struct {
	LabelWidth int  `toml:"label-width"`
	Graphemes  bool `toml:"graphemes"`
}

type Config struct {
	General  General
	Commands []string
	Ignore   []string
}

func DefaultConfig() Config {
	return Config{
		General: General{
			LabelWidth: 8,
			Graphemes:  false,
		},
	}
}

func LoadConfig(pathname string) Config {
	data, _ := os.ReadFile(pathname)
	cfg := DefaultConfig()
	err := toml.Unmarshal(data, &cfg)
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		Fatal("%v:\n%s", err, derr.String())
	}
	cfg.Commands = util.Filter(cfg.Commands, func(cmd string) bool {
		return len(cmd) != 0
	})
	return cfg
}

// configPath returns the path of the config file, if one exists.
func configPath() Optional[string] {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if len(configHome) == 0 {
		home := os.Getenv("HOME")
		if len(home) == 0 {
			return None[string]()
		}
		configHome = fmt.Sprintf("%s/.config", home)
	}
	locations := []string{
		fmt.Sprintf("%s/keywatch.toml", configHome),
		fmt.Sprintf("%s/keywatch/config.toml", configHome),
	}
	for _, location := range locations {
		stat, err := os.Stat(location)
		if err == nil && !stat.IsDir() {
			return Some(location)
		}
	}
	return None[string]()
}
