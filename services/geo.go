package services

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPResolver resolves country/city from a source IP using a local
// GeoLite2 database. A nil resolver is valid and resolves everything to
// empty values, so deployments without a database still ingest.
type GeoIPResolver struct {
	reader *geoip2.Reader
}

// OpenGeoIP opens the GeoLite2 city database at path.
func OpenGeoIP(path string) (*GeoIPResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &GeoIPResolver{reader: reader}, nil
}

// Lookup returns the ISO country code and English city name for addr.
// Unknown or unparsable addresses yield empty values.
func (g *GeoIPResolver) Lookup(addr string) (string, string) {
	if g == nil || g.reader == nil {
		return "", ""
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", ""
	}
	record, err := g.reader.City(ip)
	if err != nil {
		return "", ""
	}
	return record.Country.IsoCode, record.City.Names["en"]
}

// Close releases the database handle.
func (g *GeoIPResolver) Close() error {
	if g == nil || g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
