package network

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"elevatorbank/logger"
	"elevatorbank/types"

	"github.com/libp2p/go-reuseport"
)

const BROADCAST_ADDR = "255.255.255.255"

var Log = logger.GetLogger()

/*
 * Periodically sends the status of every elevator as a STATUS message.
 * Nothing is read back, the broadcast is for observers only.
 */
type Broadcaster struct {
	conn     net.PacketConn
	target   *net.UDPAddr
	interval time.Duration
	author   string
	statuses func() []types.Status
}

func NewBroadcaster(
	addr string,
	port int,
	interval time.Duration,
	author string,
	statuses func() []types.Status,
) (*Broadcaster, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("broadcast interval must be positive, got %v", interval)
	}

	if addr == "" {
		addr = BROADCAST_ADDR
	}

	target, err := net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", addr, port))
	if err != nil {
		return nil, err
	}

	conn, err := reuseport.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		conn:     conn,
		target:   target,
		interval: interval,
		author:   author,
		statuses: statuses,
	}, nil
}

/*
 * Runs until ctx is cancelled, the socket is closed on exit
 */
func (b *Broadcaster) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer b.conn.Close()

		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		Log.Info().
			Str("target", b.target.String()).
			Dur("interval", b.interval).
			Str("host", hostOrUnknown()).
			Msg("Status broadcast started")

		for {
			select {
			case <-ctx.Done():
				Log.Info().Msg("Status broadcast stopped")
				return

			case <-ticker.C:
				err := b.Send()
				if err != nil {
					Log.Warn().Err(err).Str("target", b.target.String()).Msg("Status broadcast failed")
				}
			}
		}
	}()
}

/*
 * Sends one status report right away
 */
func (b *Broadcaster) Send() error {
	encoded, err := FormatStatusMsg(b.author, b.statuses()).ToJson()
	if err != nil {
		return err
	}

	_, err = b.conn.WriteTo(encoded, b.target)
	return err
}

func hostOrUnknown() string {
	ip, err := LocalIP()
	if err != nil {
		return "unknown"
	}
	return ip
}
