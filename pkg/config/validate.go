package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// Validate checks the configuration and returns every problem found
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Host == "" {
		errs = append(errs, errors.New("server.host is required"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range 1-65535", c.Server.Port))
	}
	if c.Server.MaxConnections < 1 {
		errs = append(errs, fmt.Errorf("server.maxConnections must be positive, got %d", c.Server.MaxConnections))
	}
	if c.Storage.Root == "" {
		errs = append(errs, errors.New("storage.root is required"))
	}
	if c.Storage.MaxPathLength < 1 {
		errs = append(errs, fmt.Errorf("storage.maxPathLength must be positive, got %d", c.Storage.MaxPathLength))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
