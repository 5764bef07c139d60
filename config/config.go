package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "ELECTROSTYLE_CONFIG_FILE"
	envPrefix         = "ELECTROSTYLE"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type session struct {
	CookieName  string        `mapstructure:"cookie_name"`
	MaxAge      time.Duration `mapstructure:"max_age"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	MaxLive     int           `mapstructure:"max_live"`
}

type storage struct {
	Driver        string        `mapstructure:"driver"`
	DSN           string        `mapstructure:"dsn"`
	WriteAttempts int           `mapstructure:"write_attempts"`
	WriteBackoff  time.Duration `mapstructure:"write_backoff"`
}

type checkout struct {
	SubmitDelay time.Duration `mapstructure:"submit_delay"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type topics struct {
	Orders        string `mapstructure:"orders"`
	Notifications string `mapstructure:"notifications"`
}

type consumers struct {
	OrdersGroup string `mapstructure:"orders_group"`
}

type broker struct {
	Enabled            bool      `mapstructure:"enabled"`
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles  `mapstructure:"tls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Session        session    `mapstructure:"session"`
	Storage        storage    `mapstructure:"storage"`
	Checkout       checkout   `mapstructure:"checkout"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the config file at path, applies ELECTROSTYLE_* env
// overrides and validates the result.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("session.cookie_name", "electrostyle_session")
	v.SetDefault("session.max_age", "720h")
	v.SetDefault("session.idle_timeout", "30m")
	v.SetDefault("session.max_live", 10000)
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.write_attempts", 3)
	v.SetDefault("storage.write_backoff", "100ms")
	v.SetDefault("checkout.submit_delay", "1500ms")
	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.topics.orders", "orders")
	v.SetDefault("broker.topics.notifications", "notifications")
	v.SetDefault("broker.consumers.orders_group", "orders-book")
}

func (c Config) validate() error {
	var errs []error

	drivers := []string{DriverMemory, DriverPostgres, DriverSQLite}
	if !slices.Contains(drivers, c.Storage.Driver) {
		errs = append(errs, fmt.Errorf(
			"storage.driver: %q not one of %q", c.Storage.Driver, drivers,
		))
	}

	if c.Storage.Driver != DriverMemory && c.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn: required"))
	}

	if c.Session.IdleTimeout <= 0 {
		errs = append(errs, errors.New("session.idle_timeout: must be positive"))
	}

	if c.Session.MaxLive < 1 {
		errs = append(errs, errors.New("session.max_live: must be positive"))
	}

	if c.Storage.WriteAttempts < 1 {
		errs = append(errs, errors.New("storage.write_attempts: must be positive"))
	}

	if c.Broker.Enabled {
		if len(c.Broker.SeedBrokers) == 0 {
			errs = append(errs, errors.New("broker.seed_brokers: required"))
		}
		if len(c.Broker.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("broker.schema_registry_urls: required"))
		}
	}

	return errors.Join(errs...)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Session:
	CookieName=%q
	MaxAge=%q

	Storage:
	Driver=%q
	WriteAttempts=%d
	WriteBackoff=%q

	Checkout:
	SubmitDelay=%q

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		Orders=%q
		Notifications=%q
	Consumers:
		OrdersGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Session.CookieName,
		c.Session.MaxAge,
		c.Storage.Driver,
		c.Storage.WriteAttempts,
		c.Storage.WriteBackoff,
		c.Checkout.SubmitDelay,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.Orders,
		c.Broker.Topics.Notifications,
		c.Broker.Consumers.OrdersGroup,
	)
}
