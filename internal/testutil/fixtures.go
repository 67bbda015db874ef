// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"another.test.example.com",
}

// FixtureInvalidDomains contiene dominios inválidos.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"-invalid.com",
	"example..com",
}

// FixtureHarvestBody es una respuesta típica del servicio theHarvester.
const FixtureHarvestBody = `{
  "emails": ["admin@example.com", "info@example.com", "admin@example.com"],
  "hosts": ["www.example.com", "mail.example.com"],
  "ips": ["93.184.216.34"],
  "interesting_urls": ["https://example.com/login"],
  "linkedin_links": ["https://www.linkedin.com/company/example"],
  "trello_urls": [],
  "twitter_people": ["Jane Doe"],
  "linkedin_people": ["Jane Doe", "John Roe"],
  "asns": ["AS15133"],
  "shodan": []
}`
