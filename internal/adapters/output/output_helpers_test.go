package output

import (
	"harvestx/internal/core/domain"
)

// sampleResult construye un resultado con un evento de cada tipo habitual.
func sampleResult() *domain.ScanResult {
	result := domain.NewScanResult(*domain.NewTarget("example.com"))
	root := domain.NewRootEvent("example.com")
	seed := domain.NewEvent(domain.EventTypeDomainName, "example.com", domain.UIModuleName, root)
	result.AddSeed(root)
	result.AddSeed(seed)

	result.AddEvent(domain.NewEvent(domain.EventTypeIPAddress, "93.184.216.34", "theharvester", seed))
	result.AddEvent(domain.NewEvent(domain.EventTypeEmailAddr, "admin@example.com", "theharvester", seed))
	result.AddEvent(domain.NewEvent(domain.EventTypeEmailAddr, "info@example.com", "theharvester", seed))
	result.AddEvent(domain.NewEvent(domain.EventTypeHumanName, "Jane Doe", "theharvester", seed))
	result.Finalize()
	return result
}
