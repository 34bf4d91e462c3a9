package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Game struct {
	Probability float64
	Language    string
	MaxCells    int // 0 disables the limit
}

func NewGame(v *viper.Viper) (*Game, error) {
	p := v.GetFloat64("probability")
	if !(0 <= p && p <= 1) {
		return nil, fmt.Errorf("probability must be within [0, 1], got %v", p)
	}
	maxCells := v.GetInt("max_cells")
	if maxCells < 0 {
		return nil, fmt.Errorf("max_cells must not be negative, got %d", maxCells)
	}
	return &Game{
		Probability: p,
		Language:    v.GetString("language"),
		MaxCells:    maxCells,
	}, nil
}

type Server struct {
	Addr              string
	BasePath          string
	ReadHeaderTimeout time.Duration
	// SessionSweep is how often expired sessions are dropped.
	SessionSweep time.Duration
}

func NewServer(v *viper.Viper) (*Server, error) {
	addr := v.GetString("server.addr")
	if addr == "" {
		return nil, fmt.Errorf("server.addr is not set")
	}
	readHeaderTimeout := v.GetDuration("server.read_header_timeout")
	if readHeaderTimeout <= 0 {
		return nil, fmt.Errorf("server.read_header_timeout must be positive, got %s", readHeaderTimeout)
	}
	sweep := v.GetDuration("server.session_sweep")
	if sweep <= 0 {
		return nil, fmt.Errorf("server.session_sweep must be positive, got %s", sweep)
	}
	return &Server{
		Addr:              addr,
		BasePath:          v.GetString("server.base_path"),
		ReadHeaderTimeout: readHeaderTimeout,
		SessionSweep:      sweep,
	}, nil
}

type Log struct {
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

func NewLog(v *viper.Viper) *Log {
	return &Log{
		File:       v.GetString("log.file"),
		MaxSize:    v.GetInt("log.max_size"),
		MaxBackups: v.GetInt("log.max_backups"),
		MaxAge:     v.GetInt("log.max_age"),
	}
}
