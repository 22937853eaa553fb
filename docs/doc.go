// Package docs provides generated OpenAPI documentation.
//
// Labelsort API
//
//	@title			Labelsort API
//	@version		1.0
//	@description	Shipping label sorting and Shiprocket integration API.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jsklabs/labelsort
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/labelsort/serve.go -o ./swagger --parseDependency --parseInternal
