package itglue

import (
	"net/http"
	"os"
)

// Environment variables for ambient credential resolution.
const (
	EnvAPIKey         = "ITGLUE_API_KEY"
	EnvAPIKeyFallback = "IT_GLUE_API_KEY"
	EnvRegion         = "ITGLUE_REGION"
	EnvBaseURL        = "ITGLUE_BASE_URL"
)

// Inbound headers for gateway-mode credential resolution.
const (
	HeaderAPIKey         = "X-ITGlue-API-Key"
	HeaderAPIKeyFallback = "X-API-Key"
	HeaderRegion         = "X-ITGlue-Region"
	HeaderBaseURL        = "X-ITGlue-Base-URL"
)

// Region selects one of the IT Glue regional API hosts.
type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
	RegionAU Region = "au"
)

var regionBaseURLs = map[Region]string{
	RegionUS: "https://api.itglue.com",
	RegionEU: "https://api.eu.itglue.com",
	RegionAU: "https://api.au.itglue.com",
}

// Credentials is everything needed to talk to the IT Glue API. It is built
// once per request (or once per process for the stdio transport) and passed
// explicitly down the call chain; nothing here is ever written back into
// shared configuration.
type Credentials struct {
	APIKey  string
	Region  Region
	BaseURL string // optional, overrides the region-derived URL
}

// endpoint returns the base URL the client should use.
func (c Credentials) endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if u, ok := regionBaseURLs[c.Region]; ok {
		return u
	}
	return regionBaseURLs[RegionUS]
}

// RegionOrDefault returns the configured region, defaulting to us.
func (c Credentials) RegionOrDefault() Region {
	if _, ok := regionBaseURLs[c.Region]; ok {
		return c.Region
	}
	return RegionUS
}

// CredentialsFromEnv resolves credentials from the ambient environment.
// The fallback API key variable is only consulted when the primary is unset.
func CredentialsFromEnv() Credentials {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		key = os.Getenv(EnvAPIKeyFallback)
	}
	return Credentials{
		APIKey:  key,
		Region:  Region(os.Getenv(EnvRegion)),
		BaseURL: os.Getenv(EnvBaseURL),
	}
}

// CredentialsFromHeader resolves credentials from inbound request headers
// (gateway mode). The fallback key header is only consulted when the primary
// is absent.
func CredentialsFromHeader(h http.Header) Credentials {
	key := h.Get(HeaderAPIKey)
	if key == "" {
		key = h.Get(HeaderAPIKeyFallback)
	}
	return Credentials{
		APIKey:  key,
		Region:  Region(h.Get(HeaderRegion)),
		BaseURL: h.Get(HeaderBaseURL),
	}
}
