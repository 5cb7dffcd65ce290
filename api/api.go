package api

import _ "embed"

// Spec is the OpenAPI 3 description of the HTTP API.
//
//go:embed openapi.yml
var Spec []byte
