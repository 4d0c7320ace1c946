package network

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"elevatorbank/types"

	"github.com/libp2p/go-reuseport"
)

const (
	BUFFER_SIZE    = 8192
	LISTEN_TIMEOUT = 100 * time.Millisecond
)

type Listener struct {
	conn net.PacketConn
}

/*
 * Binds with SO_REUSEPORT so several observers on one machine can share the port
 */
func Listen(addr string) (*Listener, error) {
	conn, err := reuseport.ListenPacket("udp4", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{conn: conn}, nil
}

func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

/*
 * Decodes incoming status reports onto reports until ctx is cancelled.
 * Datagrams that are not STATUS messages are dropped.
 */
func (l *Listener) Start(ctx context.Context, wg *sync.WaitGroup, reports chan<- types.Msg[types.StatusReport]) {
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer l.conn.Close()

		buffer := make([]byte, BUFFER_SIZE)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			/*
			 * Short deadline so cancellation is noticed without closing the socket from outside
			 */
			err := l.conn.SetReadDeadline(time.Now().Add(LISTEN_TIMEOUT))
			if err != nil {
				Log.Error().Err(err).Msg("Could not set read deadline")
				return
			}

			n, from, err := l.conn.ReadFrom(buffer)
			if err != nil {
				var nErr net.Error
				if errors.As(err, &nErr) && nErr.Timeout() {
					continue
				}
				Log.Error().Err(err).Msg("Status listener stopped")
				return
			}

			msg, err := DecodeMsg[types.StatusReport](buffer[:n], types.STATUS)
			if err != nil {
				Log.Debug().Err(err).Str("from", from.String()).Msg("Dropped datagram")
				continue
			}

			select {
			case reports <- *msg:
			case <-ctx.Done():
				return
			}
		}
	}()
}

/*
 * Starts the listener and logs every report it receives until ctx is cancelled.
 * Returns the number of reports logged once both goroutines have stopped.
 */
func (l *Listener) Observe(ctx context.Context, wg *sync.WaitGroup) <-chan int {
	reports := make(chan types.Msg[types.StatusReport])
	received := make(chan int, 1)

	var listenerWg sync.WaitGroup
	l.Start(ctx, &listenerWg, reports)

	wg.Add(1)
	go func() {
		defer wg.Done()

		count := 0
		defer func() {
			listenerWg.Wait()
			received <- count
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case msg := <-reports:
				count++
				for _, status := range msg.Content.Elevators {
					Log.Info().
						Str("fleet", msg.Header.AuthorID).
						Str("uuid", msg.Header.UUID).
						Int("elevator", status.ID).
						Int("floor", status.Floor).
						Stringer("dirn", status.Dirn).
						Msg("Status report received")
				}
			}
		}
	}()

	return received
}
