package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/xyproto/randomstring"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_NUM_ELEVATORS      = 3
	DEFAULT_NUM_FLOORS         = 10
	DEFAULT_TRAVEL_DELAY       = time.Second
	DEFAULT_LOG_FILE           = "elevator.log"
	DEFAULT_LOG_LEVEL          = "info"
	DEFAULT_BROADCAST_INTERVAL = time.Second
	FLEET_NAME_LEN             = 8
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	NumElevators      int
	NumFloors         int
	TravelDelay       time.Duration
	LogFile           string
	LogLevel          string
	FleetName         string
	BroadcastAddr     string
	BroadcastPort     int
	BroadcastInterval time.Duration
	ListenAddr        string
	HTTPAddr          string
}

/*
 * On-disk layout, durations are written like "500ms" or "1s"
 */
type fileConfig struct {
	NumElevators      *int    `yaml:"numElevators"`
	NumFloors         *int    `yaml:"numFloors"`
	TravelDelay       *string `yaml:"travelDelay"`
	LogFile           *string `yaml:"logFile"`
	LogLevel          *string `yaml:"logLevel"`
	FleetName         *string `yaml:"fleetName"`
	BroadcastAddr     *string `yaml:"broadcastAddr"`
	BroadcastPort     *int    `yaml:"broadcastPort"`
	BroadcastInterval *string `yaml:"broadcastInterval"`
	ListenAddr        *string `yaml:"listenAddr"`
	HTTPAddr          *string `yaml:"httpAddr"`
}

func Default() Config {
	return Config{
		NumElevators:      DEFAULT_NUM_ELEVATORS,
		NumFloors:         DEFAULT_NUM_FLOORS,
		TravelDelay:       DEFAULT_TRAVEL_DELAY,
		LogFile:           DEFAULT_LOG_FILE,
		LogLevel:          DEFAULT_LOG_LEVEL,
		BroadcastAddr:     "255.255.255.255",
		BroadcastInterval: DEFAULT_BROADCAST_INTERVAL,
	}
}

/*
 * Builds the config from defaults, then the YAML file, then the .env file,
 * then the process environment. Empty paths are skipped, a missing .env is not an error.
 */
func Load(configPath string, envPath string) (Config, error) {
	c := Default()

	if configPath != "" {
		err := c.loadFile(configPath)
		if err != nil {
			return c, err
		}
	}

	env := map[string]string{}
	if envPath != "" {
		values, err := godotenv.Read(envPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("reading %s: %w", envPath, err)
		}
		for key, value := range values {
			env[key] = value
		}
	}

	for _, key := range envKeys {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}

	err := c.applyEnv(env)
	if err != nil {
		return c, err
	}

	return c, nil
}

func (c *Config) loadFile(configPath string) error {
	file, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", configPath, err)
	}
	defer file.Close()

	var fc fileConfig
	err = yaml.NewDecoder(file).Decode(&fc)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", configPath, err)
	}

	setInt(&c.NumElevators, fc.NumElevators)
	setInt(&c.NumFloors, fc.NumFloors)
	setInt(&c.BroadcastPort, fc.BroadcastPort)
	setString(&c.LogFile, fc.LogFile)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.FleetName, fc.FleetName)
	setString(&c.BroadcastAddr, fc.BroadcastAddr)
	setString(&c.ListenAddr, fc.ListenAddr)
	setString(&c.HTTPAddr, fc.HTTPAddr)

	if err := setDuration(&c.TravelDelay, fc.TravelDelay); err != nil {
		return fmt.Errorf("%s: travelDelay: %w", configPath, err)
	}
	if err := setDuration(&c.BroadcastInterval, fc.BroadcastInterval); err != nil {
		return fmt.Errorf("%s: broadcastInterval: %w", configPath, err)
	}

	return nil
}

const (
	ENV_NUM_ELEVATORS      = "ELEVATOR_NUM_ELEVATORS"
	ENV_NUM_FLOORS         = "ELEVATOR_NUM_FLOORS"
	ENV_TRAVEL_DELAY       = "ELEVATOR_TRAVEL_DELAY"
	ENV_LOG_FILE           = "ELEVATOR_LOG_FILE"
	ENV_LOG_LEVEL          = "ELEVATOR_LOG_LEVEL"
	ENV_FLEET_NAME         = "ELEVATOR_FLEET_NAME"
	ENV_BROADCAST_ADDR     = "ELEVATOR_BROADCAST_ADDR"
	ENV_BROADCAST_PORT     = "ELEVATOR_BROADCAST_PORT"
	ENV_BROADCAST_INTERVAL = "ELEVATOR_BROADCAST_INTERVAL"
	ENV_LISTEN_ADDR        = "ELEVATOR_LISTEN_ADDR"
	ENV_HTTP_ADDR          = "ELEVATOR_HTTP_ADDR"
)

var envKeys = []string{
	ENV_NUM_ELEVATORS,
	ENV_NUM_FLOORS,
	ENV_TRAVEL_DELAY,
	ENV_LOG_FILE,
	ENV_LOG_LEVEL,
	ENV_FLEET_NAME,
	ENV_BROADCAST_ADDR,
	ENV_BROADCAST_PORT,
	ENV_BROADCAST_INTERVAL,
	ENV_LISTEN_ADDR,
	ENV_HTTP_ADDR,
}

func (c *Config) applyEnv(env map[string]string) error {
	ints := map[string]*int{
		ENV_NUM_ELEVATORS:  &c.NumElevators,
		ENV_NUM_FLOORS:     &c.NumFloors,
		ENV_BROADCAST_PORT: &c.BroadcastPort,
	}
	for key, target := range ints {
		value, ok := env[key]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
		}
		*target = parsed
	}

	durations := map[string]*time.Duration{
		ENV_TRAVEL_DELAY:       &c.TravelDelay,
		ENV_BROADCAST_INTERVAL: &c.BroadcastInterval,
	}
	for key, target := range durations {
		value, ok := env[key]
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, value)
		}
		*target = parsed
	}

	strs := map[string]*string{
		ENV_LOG_FILE:       &c.LogFile,
		ENV_LOG_LEVEL:      &c.LogLevel,
		ENV_FLEET_NAME:     &c.FleetName,
		ENV_BROADCAST_ADDR: &c.BroadcastAddr,
		ENV_LISTEN_ADDR:    &c.ListenAddr,
		ENV_HTTP_ADDR:      &c.HTTPAddr,
	}
	for key, target := range strs {
		if value, ok := env[key]; ok {
			*target = value
		}
	}

	return nil
}

/*
 * Checks the values and fills in a random fleet name when none is given.
 * Returns true if the name was generated.
 */
func (c *Config) Validate() (bool, error) {
	if c.NumElevators < 1 {
		return false, fmt.Errorf("%w: need at least one elevator, got %d", ErrInvalidConfig, c.NumElevators)
	}
	if c.NumFloors < 2 {
		return false, fmt.Errorf("%w: need at least 2 floors, got %d", ErrInvalidConfig, c.NumFloors)
	}
	if c.TravelDelay < 0 {
		return false, fmt.Errorf("%w: negative travel delay %v", ErrInvalidConfig, c.TravelDelay)
	}
	if c.BroadcastPort < 0 || c.BroadcastPort > 65535 {
		return false, fmt.Errorf("%w: broadcast port %d out of range", ErrInvalidConfig, c.BroadcastPort)
	}
	if c.BroadcastPort > 0 && c.BroadcastInterval <= 0 {
		return false, fmt.Errorf("%w: broadcast interval must be positive, got %v", ErrInvalidConfig, c.BroadcastInterval)
	}

	if c.FleetName == "" {
		c.FleetName = randomstring.EnglishFrequencyString(FLEET_NAME_LEN)
		return true, nil
	}

	return false, nil
}

func setInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

func setDuration(target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	parsed, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	*target = parsed
	return nil
}
