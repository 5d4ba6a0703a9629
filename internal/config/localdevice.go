/**
 * Local Device Descriptor.
 *
 * Builds the set of IP and MAC addresses considered "local" for
 * direction inference, by querying the OS for the chosen capture
 * interface's assigned addresses. Adapted from the teacher's
 * interface-enumeration helper, which originally served interface
 * selection menus; here it feeds FlowInfo.Direction classification
 * instead.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package config

import (
	"fmt"
	"net"
	"strings"
)

// BuildLocalDevice queries the OS for the named interface's addresses
// and MAC, producing the LocalDevice descriptor the traffic model uses
// to classify packet direction.
func BuildLocalDevice(interfaceName string) (*LocalDevice, error) {
	iface, err := net.InterfaceByName(interfaceName)
	if err != nil {
		return nil, fmt.Errorf("local device lookup failed: %w", err)
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate addresses for %s: %w", interfaceName, err)
	}

	dev := &LocalDevice{MAC: strings.ToLower(iface.HardwareAddr.String())}

	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			dev.IPv4Addrs = append(dev.IPv4Addrs, ip4.String())
		} else {
			dev.IPv6Addrs = append(dev.IPv6Addrs, ipNet.IP.String())
		}
	}

	return dev, nil
}

// IsLocalAddr reports whether addr is one of this device's own
// addresses.
func (d *LocalDevice) IsLocalAddr(addr string) bool {
	if d == nil {
		return false
	}
	for _, a := range d.IPv4Addrs {
		if a == addr {
			return true
		}
	}
	for _, a := range d.IPv6Addrs {
		if a == addr {
			return true
		}
	}
	return false
}

// IsLoopback reports whether addr is a loopback address (127.0.0.0/8
// or IPv6 ::1), regardless of which device it belongs to.
func IsLoopback(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil && ip.IsLoopback()
}

// IsMulticast reports whether addr is a multicast address.
func IsMulticast(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil && ip.IsMulticast()
}

// IsBroadcast reports whether addr is the IPv4 limited-broadcast
// address. IPv6 has no broadcast concept.
func IsBroadcast(addr string) bool {
	return addr == "255.255.255.255"
}
