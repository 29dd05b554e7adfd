package config

import (
	"time"

	"github.com/num30/config"
)

type Config struct {
	RunAddress  string   `default:":8080" envvar:"RUN_ADDR"`
	LogLevel    string   `default:"info" flag:"loglevel" envvar:"LOGLEVEL"`
	DB          Database `default:"{}"`
	RedisURL    string   `default:"localhost:6379" envvar:"REDIS_URL"`
	CacheExpiry int      `default:"3600" envvar:"CACHE_EXPIRY"`
	GraphQL     GraphQL  `default:"{}"`
	Forms       Forms    `default:"{}"`
}

type Database struct {
	Host     string `default:"localhost" validate:"required" envvar:"DB_HOST"`
	Port     int    `default:"5434" envvar:"DB_PORT"`
	Password string `default:"advertisement_db" validate:"required" envvar:"DB_PASS"`
	DbName   string `default:"advertisement_db" envvar:"DB_NAME"`
	Username string `default:"advertisement_db" envvar:"DB_USERNAME"`
}

type GraphQL struct {
	URL     string        `default:"http://localhost:4000/graphql" validate:"required" envvar:"GRAPHQL_URL"`
	Token   string        `envvar:"GRAPHQL_TOKEN"`
	Timeout time.Duration `default:"15s" envvar:"GRAPHQL_TIMEOUT"`
}

// Forms configures the form sessions held in memory.
type Forms struct {
	// Location is the IANA zone used to turn instants into calendar days.
	Location      string        `default:"UTC" envvar:"FORMS_LOCATION"`
	Language      string        `default:"en" envvar:"FORMS_LANGUAGE"`
	IdleTTL       time.Duration `default:"30m" envvar:"FORMS_IDLE_TTL"`
	SweepInterval time.Duration `default:"1m" envvar:"FORMS_SWEEP_INTERVAL"`
}

func MustBuild(cfgFile string) *Config {
	var conf Config
	err := config.NewConfReader(cfgFile).Read(&conf)
	if err != nil {
		panic(err)
	}

	return &conf
}
