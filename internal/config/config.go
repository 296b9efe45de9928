package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Port       int        `koanf:"port"`
	Frontend   Frontend   `koanf:"frontend"`
	Storage    Storage    `koanf:"storage"`
	Projection Projection `koanf:"projection"`
	Database   Database   `koanf:"db"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// Storage selects the budget store backend: "csv" keeps one file per budget
// under Dir, "postgres" uses the configured database.
type Storage struct {
	Type string `koanf:"type"`
	Dir  string `koanf:"dir"`
}

type Projection struct {
	// IncludeDisabledPurchases restores the legacy behavior of feeding
	// disabled purchases into the projection and the contribution solver.
	IncludeDisabledPurchases bool `koanf:"includedisabledpurchases"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Port: 3000,
		Frontend: Frontend{
			Enabled: true,
			Dir:     "frontend",
		},
		Storage: Storage{
			Type: "csv",
			Dir:  "./data",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "budgetviz",
			Pass:   "",
			Name:   "budgetviz",
			Schema: "budgetviz",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "BUDGETVIZ_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "BUDGETVIZ_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
