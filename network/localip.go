package network

import (
	"net"
	"sync"
)

var (
	localIP     string
	localIPOnce sync.Once
	localIPErr  error
)

/*
 * Address of the interface used for outgoing traffic, resolved once.
 * Dialing UDP only picks a route, no packet leaves the machine.
 */
func LocalIP() (string, error) {
	localIPOnce.Do(func() {
		conn, err := net.Dial("udp4", "8.8.8.8:53")
		if err != nil {
			localIPErr = err
			return
		}
		defer conn.Close()
		localIP = conn.LocalAddr().(*net.UDPAddr).IP.String()
	})
	return localIP, localIPErr
}
