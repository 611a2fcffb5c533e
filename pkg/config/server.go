package config

import (
	"net"
	"strconv"
)

type ServerConfig struct {
	Host string `yaml:"host" validate:"required,ip|hostname"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`

	// ErrorStatusOK answers failed collections with 200 and an {"error": ...}
	// body, which is what existing dashboards parse. Disable to get 500.
	ErrorStatusOK bool   `yaml:"error_status_ok"`
	LogLevel      string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string `yaml:"log_format" validate:"oneof=text json"`
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:          "0.0.0.0",
		Port:          8080,
		ErrorStatusOK: true,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Address is the host:port the HTTP server binds to.
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) applyEnv() error {
	setString(&c.Host, "HOST")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if err := setInt(&c.Port, "PORT"); err != nil {
		return err
	}
	return setBool(&c.ErrorStatusOK, "ERROR_STATUS_OK")
}
