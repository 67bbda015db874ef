package theharvester

import (
	"harvestx/internal/core/ports"
	"harvestx/internal/platform/logx"
	"harvestx/internal/platform/registry"
	"harvestx/internal/sources/harvesterapi"
)

// Auto-registro del módulo al importar el package
func init() {
	if err := registry.Global().Register(ModuleName, Factory, metadata()); err != nil {
		logx.New().Warn("failed to register theharvester module", "error", err.Error())
	}
}

// Factory builds a module wired to a real theHarvester HTTP client.
func Factory(userOpts map[string]string, logger logx.Logger) (ports.Module, error) {
	opts, err := ParseOptions(userOpts)
	if err != nil {
		return nil, err
	}

	client := harvesterapi.New(harvesterapi.Config{
		BaseURL:   opts.BaseURL(),
		Sources:   opts.Sources,
		Timeout:   opts.Timeout,
		RateLimit: opts.RateLimit,
	}, logger)

	return New(opts, client, logger), nil
}

func metadata() ports.ModuleMetadata {
	return ports.ModuleMetadata{
		Name:        ModuleName,
		DisplayName: "Tool - theHarvester",
		Summary:     "Determining the threat landscape of a domain on the Internet using theHarvester API service.",
		Flags:       []string{"tool"},
		UseCases:    []string{"Investigate", "Passive"},
		Categories:  []string{"Search Engines"},
		Tool: &ports.ToolDetails{
			Name:        "theHarvester",
			Description: "Check the information related to a domain on the Internet, which could be gathered as open source intelligence.",
			Website:     "https://github.com/laramies/theHarvester",
			Repository:  "https://github.com/laramies/theHarvester",
		},
		Options: OptionDescriptions,
	}
}
