// Package config loads the .env file the server is launched with. The
// file is a fixed set of KEY=VALUE lines; a missing file or an
// unrecognized address family is fatal at startup.
package config

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AddressFamily string
	SocketType    string
	Domain        string
	Protocol      int
	Port          int
	Backlog       int
}

// Load reads and validates the configuration file.
func Load(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening config file (make sure you have a %q file): %w", filename, err)
	}
	defer f.Close()

	vars := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("malformed config line %q", line)
		}
		vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{
		AddressFamily: vars["ADDRESS_FAMILY"],
		SocketType:    vars["SOCKET_TYPE"],
		Domain:        vars["DOMAIN"],
	}

	switch cfg.AddressFamily {
	case "AF_INET", "AF_INET6":
	default:
		return nil, fmt.Errorf("ADDRESS_FAMILY %q is not a valid value, try AF_INET or AF_INET6", cfg.AddressFamily)
	}

	for key, dst := range map[string]*int{
		"PROTOCOL": &cfg.Protocol,
		"PORT":     &cfg.Port,
		"BACKLOG":  &cfg.Backlog,
	} {
		n, err := strconv.Atoi(vars[key])
		if err != nil {
			return nil, fmt.Errorf("%s %q is not a number: %w", key, vars[key], err)
		}
		*dst = n
	}

	return cfg, nil
}

// ListenAddr renders the host:port the listener binds to. Symbolic
// interface names in DOMAIN map onto their addresses.
func (c *Config) ListenAddr() string {
	host := c.Domain
	switch host {
	case "INADDR_ANY", "":
		host = "0.0.0.0"
	case "INADDR_LOOPBACK":
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}
