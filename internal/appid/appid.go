/**
 * Application Port Table.
 *
 * Maps well-known transport ports to the fixed AppTag enumeration used
 * by the header analyzer. Ties between a well-known source port and a
 * well-known destination port are broken in favor of the lower
 * numbered port, on the theory that it identifies the server side of
 * the connection.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package appid

import "github.com/quietwire/netcore/internal/netmodel"

// portTable maps well-known ports to their application tag.
var portTable = map[uint16]netmodel.AppTag{
	80:   netmodel.AppHTTP,
	8080: netmodel.AppHTTP,
	443:  netmodel.AppHTTPS,
	8443: netmodel.AppHTTPS,
	53:   netmodel.AppDNS,
	22:   netmodel.AppSSH,
	21:   netmodel.AppFTP,
	25:   netmodel.AppSMTP,
	587:  netmodel.AppSMTP,
	465:  netmodel.AppSMTP,
	143:  netmodel.AppIMAP,
	993:  netmodel.AppIMAP,
	110:  netmodel.AppPOP3,
	995:  netmodel.AppPOP3,
	3389: netmodel.AppRDP,
	5900: netmodel.AppVNC,
	23:   netmodel.AppTelnet,
	5060: netmodel.AppSIP,
	5061: netmodel.AppSIP,
	123:  netmodel.AppNTP,
	67:   netmodel.AppDHCP,
	68:   netmodel.AppDHCP,
}

// Identify returns the application tag for a transport port pair. When
// both ports resolve to a tag, the lower numbered port wins on the
// assumption it is the well-known server-side port; when only one
// resolves, that one wins; otherwise AppUnknown.
func Identify(srcPort, dstPort uint16) netmodel.AppTag {
	srcTag, srcOK := portTable[srcPort]
	dstTag, dstOK := portTable[dstPort]

	switch {
	case srcOK && dstOK:
		if srcPort <= dstPort {
			return srcTag
		}
		return dstTag
	case srcOK:
		return srcTag
	case dstOK:
		return dstTag
	default:
		return netmodel.AppUnknown
	}
}
