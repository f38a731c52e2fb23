// Package swagger registers the OpenAPI document served under /swagger.
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Health Check",
                "produces": ["application/json"],
                "security": [],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accesslist/entries": {
            "get": {
                "description": "Returns every row of access_list_client with its domain and address.",
                "produces": ["application/json"],
                "tags": ["accesslist"],
                "summary": "List Allowlist Entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Entry"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accesslist/snapshot": {
            "get": {
                "description": "Returns the snapshot written by the last applied pass.",
                "produces": ["application/json"],
                "tags": ["accesslist"],
                "summary": "Get Snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accesslist/sync": {
            "post": {
                "description": "Restores cleared domains, resolves every domain and updates changed addresses. Concurrent requests share one pass.",
                "produces": ["application/json"],
                "tags": ["accesslist"],
                "summary": "Run Reconciliation",
                "parameters": [
                    {"type": "boolean", "description": "Plan only, change nothing", "name": "dry_run", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accesslist.RunReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/accesslist.RunReport"}}
                }
            }
        },
        "/accesslist/last": {
            "get": {
                "description": "Returns the report of the most recent pass run by this process.",
                "produces": ["application/json"],
                "tags": ["accesslist"],
                "summary": "Last Reconciliation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accesslist.RunReport"}},
                    "404": {"description": "No pass has run yet", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "reconcile.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "domain": {"type": "string"},
                "address": {"type": "string"}
            }
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "total_entries": {"type": "integer"},
                "restored": {"type": "integer"},
                "address_changes": {"type": "integer"},
                "resolve_failures": {"type": "integer"},
                "purged": {"type": "integer"},
                "changes": {"type": "integer"}
            }
        },
        "reconcile.ApplyResult": {
            "type": "object",
            "properties": {
                "dry_run": {"type": "boolean"},
                "updated_entries": {"type": "integer"},
                "snapshot_saved": {"type": "boolean"},
                "patched": {"type": "integer"},
                "patch_errors": {"type": "array", "items": {"type": "string"}},
                "reloaded": {"type": "boolean"},
                "reload_error": {"type": "string"}
            }
        },
        "accesslist.RunReport": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "dry_run": {"type": "boolean"},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"},
                "result": {"$ref": "#/definitions/reconcile.ApplyResult"},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "allowlist-sync API",
	Description:      "Keeps DNS-derived allowlist entries of Nginx Proxy Manager in sync.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
