// Package towers holds the small data types describing mobile-network
// radio towers: technology, provider, and position/range. Loading towers
// from CSV or any other external source is outside this package's scope
// (an external collaborator, per the routing core's spec); callers
// construct Tower values directly.
package towers

import "fmt"

// TowerType is the radio technology a tower broadcasts.
type TowerType int

const (
	LTE TowerType = iota
	UMTS
	GSM
)

func (t TowerType) String() string {
	switch t {
	case LTE:
		return "LTE"
	case UMTS:
		return "UMTS"
	case GSM:
		return "GSM"
	default:
		return fmt.Sprintf("TowerType(%d)", int(t))
	}
}

// Provider is a mobile network operator.
type Provider int

const (
	Telekom Provider = iota + 1
	Vodafone
	O2
)

func (p Provider) String() string {
	switch p {
	case Telekom:
		return "Telekom"
	case Vodafone:
		return "Vodafone"
	case O2:
		return "O2"
	default:
		return fmt.Sprintf("Provider(%d)", int(p))
	}
}

// AllProviders lists every provider the coverage store carries a vector
// for.
var AllProviders = [...]Provider{Telekom, Vodafone, O2}

// Tower is a single radio tower.
type Tower struct {
	Radio     TowerType
	Provider  Provider
	Latitude  float64
	Longitude float64
	Range     float64 // meters
}

// Lat and Lon let Tower satisfy grid.LatLoner without pkg/grid needing to
// import pkg/towers.
func (t Tower) Lat() float64 { return t.Latitude }
func (t Tower) Lon() float64 { return t.Longitude }
