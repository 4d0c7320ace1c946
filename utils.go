package main

import (
	"flag"
	"time"

	"elevatorbank/config"
)

type commandlineFlags struct {
	configPath string
	envPath    string
	overrides  func(*config.Config)
}

/*
 * Parse command line arguments. Only flags that are given override the
 * values from the config file and environment.
 */
func parseCommandlineFlags(args []string) (commandlineFlags, error) {
	flags := flag.NewFlagSet("elevatorbank", flag.ContinueOnError)

	configPath := flags.String("config", "", "YAML config file")
	envPath := flags.String("env", ".env", "Environment file")
	numElevators := flags.Int("elevators", config.DEFAULT_NUM_ELEVATORS, "Number of elevators")
	numFloors := flags.Int("floors", config.DEFAULT_NUM_FLOORS, "Number of floors")
	travelDelay := flags.Duration("delay", config.DEFAULT_TRAVEL_DELAY, "Travel delay per move")
	logFile := flags.String("log", config.DEFAULT_LOG_FILE, "Log file, empty for console only")
	logLevel := flags.String("loglevel", config.DEFAULT_LOG_LEVEL, "Log level")
	fleetName := flags.String("name", "", "Fleet name used in status broadcasts")
	broadcastPort := flags.Int("bport", 0, "Status broadcast port, 0 disables broadcasting")
	broadcastInterval := flags.Duration("binterval", config.DEFAULT_BROADCAST_INTERVAL, "Status broadcast interval")
	listenAddr := flags.String("listen", "", "Address to receive and log status broadcasts on, empty disables it")
	httpAddr := flags.String("http", "", "HTTP listen address, empty disables the API")

	err := flags.Parse(args)
	if err != nil {
		return commandlineFlags{}, err
	}

	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	overrides := func(c *config.Config) {
		overrideInt(set["elevators"], &c.NumElevators, *numElevators)
		overrideInt(set["floors"], &c.NumFloors, *numFloors)
		overrideInt(set["bport"], &c.BroadcastPort, *broadcastPort)
		overrideDuration(set["delay"], &c.TravelDelay, *travelDelay)
		overrideDuration(set["binterval"], &c.BroadcastInterval, *broadcastInterval)
		overrideString(set["log"], &c.LogFile, *logFile)
		overrideString(set["loglevel"], &c.LogLevel, *logLevel)
		overrideString(set["name"], &c.FleetName, *fleetName)
		overrideString(set["listen"], &c.ListenAddr, *listenAddr)
		overrideString(set["http"], &c.HTTPAddr, *httpAddr)
	}

	return commandlineFlags{
		configPath: *configPath,
		envPath:    *envPath,
		overrides:  overrides,
	}, nil
}

func loadConfig(args []string) (config.Config, bool, error) {
	flags, err := parseCommandlineFlags(args)
	if err != nil {
		return config.Config{}, false, err
	}

	c, err := config.Load(flags.configPath, flags.envPath)
	if err != nil {
		return c, false, err
	}

	flags.overrides(&c)

	generatedName, err := c.Validate()
	return c, generatedName, err
}

func overrideInt(set bool, target *int, value int) {
	if set {
		*target = value
	}
}

func overrideString(set bool, target *string, value string) {
	if set {
		*target = value
	}
}

func overrideDuration(set bool, target *time.Duration, value time.Duration) {
	if set {
		*target = value
	}
}
