// Package docs registers the swagger document. This is a bootstrap
// placeholder with an empty paths object; run `swag init -g cmd/gateway/main.go`
// to regenerate it from the handler annotations before serving docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:7391",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Art Critique Gateway API",
	Description:      "Gateway service for the decentralized art critique platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
