package apicontract

import _ "embed"

//go:embed openapi.yml
var specBytes []byte

// GetSpecBytes returns the embedded OpenAPI specification of the catalog API.
func GetSpecBytes() []byte {
	return specBytes
}
