package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"elevatorbank/api"
	"elevatorbank/cli"
	"elevatorbank/fleet"
	"elevatorbank/logger"
	"elevatorbank/network"

	"github.com/rs/zerolog"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

/*
 * Runs the system until Q, end of input or a signal. Every resource opened
 * here is released before returning, also on error.
 */
func run(args []string, in io.Reader, out io.Writer) error {
	c, generatedName, err := loadConfig(args)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	/*
	 * Log to the console and, if configured, append to the log file
	 */
	var logFile io.Writer
	if c.LogFile != "" {
		file, err := logger.OpenLogFile(c.LogFile)
		if err != nil {
			return err
		}
		defer file.Close()
		logFile = file
	}
	log := logger.Configure(level, logFile)

	if generatedName {
		log.Warn().Msgf("No fleet name provided, generated random name \"%v\"", c.FleetName)
	}

	/*
	 * Start the elevators
	 */
	elevators, err := fleet.New(c.NumElevators, c.NumFloors, c.TravelDelay)
	if err != nil {
		log.Error().Err(err).Msg("Could not start fleet")
		return err
	}
	defer elevators.Shutdown()

	log.Info().
		Str("fleet", c.FleetName).
		Int("elevators", c.NumElevators).
		Int("floors", c.NumFloors).
		Dur("travelDelay", c.TravelDelay).
		Msg("Elevator system started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	/*
	 * On return: cancel, join the goroutines, then the elevators and the log file
	 */
	var wg sync.WaitGroup
	defer wg.Wait()
	defer stop()

	/*
	 * Status broadcasting
	 */
	if c.BroadcastPort > 0 {
		broadcaster, err := network.NewBroadcaster(
			c.BroadcastAddr,
			c.BroadcastPort,
			c.BroadcastInterval,
			c.FleetName,
			elevators.Statuses,
		)
		if err != nil {
			log.Error().Err(err).Msg("Could not start status broadcast")
		} else {
			broadcaster.Start(ctx, &wg)
		}
	}

	/*
	 * Log status reports from this and other fleets
	 */
	if c.ListenAddr != "" {
		listener, err := network.Listen(c.ListenAddr)
		if err != nil {
			log.Error().Err(err).Str("addr", c.ListenAddr).Msg("Could not listen for status reports")
		} else {
			listener.Observe(ctx, &wg)
		}
	}

	/*
	 * HTTP API
	 */
	if c.HTTPAddr != "" {
		api.NewServer(c.HTTPAddr, elevators).Start(ctx, &wg)
	}

	/*
	 * Command interface
	 */
	cliDone := make(chan error, 1)
	go func() {
		cliDone <- cli.Run(in, out, elevators)
	}()

	select {
	case err := <-cliDone:
		if err != nil {
			log.Error().Err(err).Msg("Reading commands failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Signal received")
	}

	log.Info().Msg("Elevator system stopping")

	return nil
}
