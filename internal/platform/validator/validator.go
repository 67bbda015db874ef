// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

var (
	domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Domain validators

// IsDomain verifica si un string es un dominio válido (ASCII o punycode).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	// Verificar que no sea una IP
	return net.ParseIP(domain) == nil
}

// NormalizeDomain normaliza un dominio a su forma canónica.
// Unlike the URL helpers it keeps a leading "www." since the harvesting
// service treats it as a distinct host.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(domain, ".")
}

// ToASCII convierte un dominio internacional (IDN) a punycode.
func ToASCII(domain string) (string, error) {
	return idna.Lookup.ToASCII(NormalizeDomain(domain))
}

// RegistrableDomain retorna el eTLD+1 del dominio (ej: "a.b.example.co.uk" -> "example.co.uk").
// Si publicsuffix falla (localhost, dominios sin TLD), retorna el dominio normalizado.
func RegistrableDomain(domain string) string {
	domain = NormalizeDomain(domain)
	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return etld1
}

// Email validators

// IsEmail valida formato de email (RFC 5322 simplificado).
func IsEmail(email string) bool {
	if len(email) == 0 || len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(strings.TrimSpace(ip)) != nil
}

// IsPort valida que un puerto esté en el rango válido [1-65535].
func IsPort(portStr string) bool {
	port, err := strconv.Atoi(strings.TrimSpace(portStr))
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}

// IsHost acepta cualquier host no vacío sin espacios ni '/'.
// No exige RFC 1123: nombres de servicio como "theharvester_api" e IPv6 son válidos.
func IsHost(host string) bool {
	if host == "" || strings.ContainsRune(host, '/') {
		return false
	}
	return strings.IndexFunc(host, unicode.IsSpace) < 0
}

// URL validators

// IsURL verifica si un string es una URL http(s) absoluta.
func IsURL(urlStr string) bool {
	u, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
