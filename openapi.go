// Package sandboxd embeds the HTTP API description.
package sandboxd

import _ "embed"

// OpenAPIYAML is the OpenAPI 3 document served at /spec.yaml and used to
// validate /v1 requests
//
//go:embed openapi.yaml
var OpenAPIYAML []byte
