package middleware

import (
	"bytes"
	"net"
	"net/http"
	"strings"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// DefaultIPAddress is what GetIPAddress reports when no public address is found.
const DefaultIPAddress = "0.0.0.0"

// An ipRange is a range of IP addresses.
type ipRange struct {
	start net.IP
	end   net.IP
}

// contains checks whether the address is within the range.
func (r ipRange) contains(ip net.IP) bool {
	return bytes.Compare(ip, r.start) >= 0 && bytes.Compare(ip, r.end) < 0
}

// IANA defined IPv4 non-public ranges
var privateRanges = []ipRange{
	{start: net.ParseIP("10.0.0.0"), end: net.ParseIP("10.255.255.255")},
	{start: net.ParseIP("100.64.0.0"), end: net.ParseIP("100.127.255.255")},
	{start: net.ParseIP("172.16.0.0"), end: net.ParseIP("172.31.255.255")},
	{start: net.ParseIP("192.0.0.0"), end: net.ParseIP("192.0.0.255")},
	{start: net.ParseIP("192.168.0.0"), end: net.ParseIP("192.168.255.255")},
	{start: net.ParseIP("198.18.0.0"), end: net.ParseIP("198.19.255.255")},
}

// InjectIPAddress stores the client's IP address, as found by GetIPAddress,
// in the request context under trellis.IpAddrKey.
func InjectIPAddress() pipeline.Decorator {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(c *pipeline.Context) pipeline.Result {
			res := next(c)
			if !res.OK() {
				return res
			}

			c.SetValue(trellis.IpAddrKey, GetIPAddress(c.Request().Header))
			return res
		}
	}
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// from the request.
//
// GetIPAddress skips addresses from non-public ranges
// and returns DefaultIPAddress when nothing else is left.
func GetIPAddress(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(hm.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			realIP := net.ParseIP(ip)
			if !realIP.IsGlobalUnicast() || isPrivateSubnet(realIP) {
				continue
			}

			return ip
		}
	}

	return DefaultIPAddress
}

// ipAddress prefers what InjectIPAddress stored over parsing headers again.
func ipAddress(c *pipeline.Context) string {
	if ip, ok := c.Value(trellis.IpAddrKey).(string); ok && ip != "" {
		return ip
	}

	return GetIPAddress(c.Request().Header)
}

// isPrivateSubnet checks whether the IP address is in a private subnet.
//
// Only IPv4 subnets are supported.
func isPrivateSubnet(ip net.IP) bool {
	if ip.To4() == nil {
		return false
	}

	for _, r := range privateRanges {
		if r.contains(ip) {
			return true
		}
	}

	return false
}
