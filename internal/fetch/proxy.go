package fetch

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Proxy selects how requests reach the feed host.
//
// UseSystem wins over an explicit address. With neither, requests go direct.
type Proxy struct {
	UseSystem bool
	Address   string
	Port      int
}

// Mode names the effective proxy mode: "system", "manual" or "direct".
func (p Proxy) Mode() string {
	switch {
	case p.UseSystem:
		return "system"
	case strings.TrimSpace(p.Address) != "":
		return "manual"
	default:
		return "direct"
	}
}

// Validate checks the port range of a manual proxy.
func (p Proxy) Validate() error {
	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("proxy port %d out of range", p.Port)
	}
	if p.Mode() == "manual" {
		if _, err := p.url(); err != nil {
			return err
		}
	}
	return nil
}

func (p Proxy) url() (*url.URL, error) {
	addr := strings.TrimSpace(p.Address)
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("parse proxy address: %w", err)
		}
		if p.Port > 0 && u.Port() == "" {
			u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(p.Port))
		}
		return u, nil
	}
	host := addr
	if p.Port > 0 {
		host = net.JoinHostPort(addr, strconv.Itoa(p.Port))
	}
	return &url.URL{Scheme: "http", Host: host}, nil
}

// proxyFunc returns the http.Transport proxy hook for p.
func (p Proxy) proxyFunc() (func(*http.Request) (*url.URL, error), error) {
	switch p.Mode() {
	case "system":
		return http.ProxyFromEnvironment, nil
	case "manual":
		u, err := p.url()
		if err != nil {
			return nil, err
		}
		return http.ProxyURL(u), nil
	default:
		return nil, nil
	}
}

func (p Proxy) String() string {
	switch p.Mode() {
	case "manual":
		if u, err := p.url(); err == nil {
			return "manual " + u.String()
		}
		return "manual " + p.Address
	default:
		return p.Mode()
	}
}
