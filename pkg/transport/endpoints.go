package transport

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ClientType identifies the kind of market participant making requests.
type ClientType string

const (
	// ClientBSP is a balancing service provider.
	ClientBSP ClientType = "bsp"
	// ClientMO is the market operator.
	ClientMO ClientType = "mo"
	// ClientTSO is a transmission system operator.
	ClientTSO ClientType = "tso"
)

// Valid reports whether the client type is one of the supported values.
func (c ClientType) Valid() bool {
	return c == ClientBSP || c == ClientMO || c == ClientTSO
}

// Interface identifies which MMS web service a request targets.
type Interface string

const (
	// InterfaceMI is the Market Initiator service.
	InterfaceMI Interface = "mi"
	// InterfaceOMI is the Other Market Initiator service.
	InterfaceOMI Interface = "omi"
)

// ServiceEndpoint holds the main, backup, and test URLs for one service.
// The backup is used after the main endpoint returns a server error.
type ServiceEndpoint struct {
	Main   string `yaml:"main"`
	Backup string `yaml:"backup"`
	Test   string `yaml:"test"`
}

// Endpoints maps every client type and interface to its service endpoint.
type Endpoints map[ClientType]map[Interface]ServiceEndpoint

// DefaultEndpoints returns the production MMS endpoints. BSPs and the
// market operator share one set of URLs; TSOs use dedicated hosts.
func DefaultEndpoints() Endpoints {
	bspMO := map[Interface]ServiceEndpoint{
		InterfaceOMI: {
			Main:   "https://www5.tdgc.jp/axis2/services/OmiWebService",
			Backup: "https://www6.tdgc.jp/axis2/services/OmiWebService",
			Test:   "https://www7.tdgc.jp/axis2/services/OmiWebService",
		},
		InterfaceMI: {
			Main:   "https://www2.tdgc.jp/axis2/services/MiWebService",
			Backup: "https://www3.tdgc.jp/axis2/services/MiWebService",
			Test:   "https://www4.tdgc.jp/axis2/services/MiWebService",
		},
	}
	tso := map[Interface]ServiceEndpoint{
		InterfaceOMI: {
			Main:   "https://maiwlba103v07.tdgc.jp/axis2/services/OmiWebService",
			Backup: "https://mbiwlba103v07.tdgc.jp/axis2/services/OmiWebService",
			Test:   "https://mbiwlba103v08.tdgc.jp/axis2/services/OmiWebService",
		},
		InterfaceMI: {
			Main:   "https://maiwlba103v03.tdgc.jp/axis2/services/MiWebService",
			Backup: "https://mbiwlba103v03.tdgc.jp/axis2/services/MiWebService",
			Test:   "https://mbiwlba103v06.tdgc.jp/axis2/services/MiWebService",
		},
	}
	return Endpoints{
		ClientBSP: bspMO,
		ClientMO:  bspMO,
		ClientTSO: tso,
	}
}

// LoadEndpoints reads YAML endpoint overrides and merges them over the
// defaults. Only the entries present in the document are replaced.
func LoadEndpoints(r io.Reader) (Endpoints, error) {
	var overrides Endpoints
	if err := yaml.NewDecoder(r).Decode(&overrides); err != nil {
		return nil, fmt.Errorf("failed to decode endpoint overrides: %w", err)
	}
	endpoints := DefaultEndpoints()
	for client, byInterface := range overrides {
		if !client.Valid() {
			return nil, fmt.Errorf("unknown client type %q in endpoint overrides", client)
		}
		merged := make(map[Interface]ServiceEndpoint, len(endpoints[client]))
		for iface, ep := range endpoints[client] {
			merged[iface] = ep
		}
		for iface, ep := range byInterface {
			if iface != InterfaceMI && iface != InterfaceOMI {
				return nil, fmt.Errorf("unknown interface %q in endpoint overrides", iface)
			}
			merged[iface] = ep
		}
		endpoints[client] = merged
	}
	return endpoints, nil
}

// LoadEndpointsFile reads YAML endpoint overrides from a file.
func LoadEndpointsFile(path string) (Endpoints, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open endpoint overrides: %w", err)
	}
	defer f.Close()
	return LoadEndpoints(f)
}

// Endpoint returns the service endpoint for the given client and interface.
func (e Endpoints) Endpoint(client ClientType, iface Interface) (ServiceEndpoint, error) {
	byInterface, ok := e[client]
	if !ok {
		return ServiceEndpoint{}, fmt.Errorf("no endpoints for client type %q", client)
	}
	ep, ok := byInterface[iface]
	if !ok {
		return ServiceEndpoint{}, fmt.Errorf("no %s endpoint for client type %q", iface, client)
	}
	return ep, nil
}
