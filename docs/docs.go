// Package docs holds the Swagger document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/api/main.go`.
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
        "/api/v1/interpret/parse": {
            "post": {
                "description": "Turns a natural-language line into a task or event, reporting which strategy produced it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Interpret"],
                "summary": "Interpret free text",
                "parameters": [
                    {
                        "description": "Text to interpret",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.parseReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.parseResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/interpret/stats": {
            "get": {
                "description": "Returns cache occupancy and whether the inference service is in use.",
                "produces": ["application/json"],
                "tags": ["Interpret"],
                "summary": "Interpretation cache statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.statsResp"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Service identity, cache occupancy and inference state",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "API is healthy", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/live": {
            "get": {
                "description": "Check if the API process is alive",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "description": "Whether the interpretation cascade can serve traffic",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {"200": {"description": "API is ready", "schema": {"type": "object", "additionalProperties": true}}}
            }
        }
    },
    "definitions": {
        "http.parseReq": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string", "maxLength": 2000}
            }
        },
        "http.parseResp": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "outcome": {
                    "type": "object",
                    "properties": {
                        "intent": {
                            "type": "object",
                            "properties": {
                                "type": {"type": "string", "enum": ["task", "event"]},
                                "task": {"type": "object"},
                                "event": {"type": "object"}
                            }
                        },
                        "strategy": {
                            "type": "string",
                            "enum": ["cached_exact", "cached_fuzzy", "fixed_pattern", "rule_engine", "inference", "fallback"]
                        },
                        "confidence": {"type": "number"},
                        "elapsed_ms": {"type": "integer"}
                    }
                }
            }
        },
        "http.statsResp": {
            "type": "object",
            "properties": {
                "cache_len": {"type": "integer"},
                "cache_capacity": {"type": "integer"},
                "inference_available": {"type": "boolean"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Task Intent API",
	Description:      "Interprets free-form text into tasks and calendar events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
