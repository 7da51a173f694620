// Package ports picks listen addresses for the preview server.
package ports

import (
	"fmt"
	"net"
	"strconv"
)

// FindFreePort asks the kernel for an unused TCP port on host.
func FindFreePort(host string) (int, error) {
	if host == "" {
		host = "127.0.0.1"
	}
	l, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return 0, fmt.Errorf("listen: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// Resolve replaces a zero or missing port in addr with a free one so the
// address can be printed before the server starts.
func Resolve(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("parse addr %q: %w", addr, err)
	}
	if port != "" && port != "0" {
		if _, err := strconv.Atoi(port); err != nil {
			return "", fmt.Errorf("parse addr %q: bad port", addr)
		}
		return addr, nil
	}
	p, err := FindFreePort(host)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(p)), nil
}
