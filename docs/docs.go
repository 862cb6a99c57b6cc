// Package docs registers the OpenAPI description of the JSON endpoints with swag.
// Regenerate with `go generate ./cmd/web` after changing handler annotations.
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
    "paths": {
        "/ping": {
            "get": {
                "description": "Check if the server is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Ping health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/main.PingResponse"}
                    }
                }
            }
        },
        "/api/v1/locations/autocomplete": {
            "get": {
                "description": "Search locations by name. Queries shorter than three characters return an empty list without searching. Upstream failures also return an empty list.",
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Location autocomplete",
                "parameters": [
                    {"type": "string", "example": "Moscow", "description": "Search text", "name": "q", "in": "query"},
                    {"maximum": 20, "minimum": 1, "type": "integer", "default": 6, "description": "Maximum number of results", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/types.LocationSuggestion"}}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/httpkit.ErrorResponse"}
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {"$ref": "#/definitions/httpkit.ErrorResponse"}
                    }
                }
            }
        },
        "/api/v1/birth-data/validate": {
            "post": {
                "description": "Validate onboarding birth data. Location ids may be numbers or numeric strings. Unknown keys are rejected.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["birth-data"],
                "summary": "Validate birth data",
                "parameters": [
                    {"description": "Birth data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/birthdata.Input"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/main.ValidateResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/httpkit.ErrorResponse"}
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {"$ref": "#/definitions/main.ValidateResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "main.PingResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "pong"}
            }
        },
        "main.ValidateResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/birthdata.FieldResult"}},
                "values": {"$ref": "#/definitions/birthdata.Values"}
            }
        },
        "birthdata.Input": {
            "type": "object",
            "properties": {
                "birthDate": {"type": "string", "example": "2025-01-01"},
                "birthTime": {"type": "string", "example": "14:30"},
                "timezone": {"type": "string", "example": "UTC"},
                "birthLocationId": {"type": "string", "example": "42"},
                "currentLocationId": {"type": "string"}
            }
        },
        "birthdata.Values": {
            "type": "object",
            "properties": {
                "birthDate": {"type": "string"},
                "birthTime": {"type": "string"},
                "timezone": {"type": "string"},
                "birthLocationId": {"type": "integer"},
                "currentLocationId": {"type": "integer"}
            }
        },
        "birthdata.FieldResult": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "birthLocationId"},
                "ok": {"type": "boolean"},
                "kind": {"type": "string", "enum": ["missing", "invalid_type", "invalid"]},
                "message": {"type": "string", "example": "Выберите место рождения"}
            }
        },
        "types.LocationSuggestion": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 7},
                "name": {"type": "string", "example": "Moscow"},
                "city": {"type": "string", "example": "Moscow"},
                "state": {"type": "string", "example": "Moscow"},
                "country": {"type": "string", "example": "Russia"},
                "latitude": {"type": "number", "example": 55.7558},
                "longitude": {"type": "number", "example": 37.6173},
                "timezone": {"type": "string", "example": "Europe/Moscow"},
                "score": {"type": "number", "example": 0.9}
            }
        },
        "httpkit.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Horoscopus Web API",
	Description:      "Location autocomplete and birth data validation for the Horoscopus web client",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
