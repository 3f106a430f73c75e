package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"
)

// Resolver looks up the addresses of a host. *net.Resolver implements it.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Resolve returns the address host refers to. Literal addresses are returned without a
// lookup. When a host has both, IPv4 addresses are preferred.
func (p *Pinger) Resolve(ctx context.Context, host string, timeout time.Duration) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap(), nil
	}

	p.logger.Debugf("Resolving address %s", host)

	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addrs, err := p.resolver.LookupNetIP(lookupCtx, "ip", host)
	if err != nil {
		if isTimeout(lookupCtx, err) {
			return netip.Addr{}, fmt.Errorf("%w: %s after %s", ErrDNSResolveTimeout, host, timeout)
		}
		return netip.Addr{}, fmt.Errorf("%w: %s: %w", ErrDNSResolveFailure, host, err)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("%w: %s has no addresses", ErrDNSResolveFailure, host)
	}

	addr := addrs[0].Unmap()
	for _, a := range addrs {
		if a.Unmap().Is4() {
			addr = a.Unmap()
			break
		}
	}

	p.logger.Debugf("Address %s resolved to IP Address %s", host, addr)
	return addr, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsTimeout
}
