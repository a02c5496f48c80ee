package trends

import (
	"net"
	"time"

	"github.com/valyala/fasthttp"
)

// ConnectionConfig holds the transport settings for the gateway client
type ConnectionConfig struct {
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	DialTimeout         time.Duration `json:"dial_timeout"`

	// Dial replaces the TCP dialer, e.g. with an in-memory listener.
	Dial fasthttp.DialFunc `json:"-"`
}

// DefaultConnectionConfig suits a client that issues one request at a time.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     2,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        10 * time.Second,
		DialTimeout:         10 * time.Second,
	}
}

func newFastHTTPClient(config ConnectionConfig) *fasthttp.Client {
	dial := config.Dial
	if dial == nil {
		dialTimeout := config.DialTimeout
		dial = func(addr string) (net.Conn, error) {
			return fasthttp.DialTimeout(addr, dialTimeout)
		}
	}
	return &fasthttp.Client{
		Name:                "trends-desk/1.0",
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
		Dial:                dial,
	}
}
