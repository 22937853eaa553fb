package endpoints

import (
	"github.com/jsklabs/labelsort/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Label sorting
		&SortLabelsEndpoint{},

		// Shiprocket passthrough endpoints
		&OrdersEndpoint{},
		&ShipEndpoint{},
		&LabelsEndpoint{},
		&BalanceEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

// ShiprocketCommands returns endpoints for Shiprocket operations.
// This groups them under the "api shiprocket" subcommand.
func ShiprocketCommands() []api.Endpoint {
	return []api.Endpoint{
		&OrdersEndpoint{},
		&ShipEndpoint{},
		&LabelsEndpoint{},
		&BalanceEndpoint{},
	}
}
