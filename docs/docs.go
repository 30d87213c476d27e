// Package docs registers the OpenAPI description served at /swagger/*.
// Handler annotations in internal/api/handler are the source for this
// template. Regenerate with `go generate ./cmd/server`; the router tests
// fail when a registered route is missing here.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "in": "header", "name": "Cookie", "description": "admin_token session cookie"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Admin login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "invalid credentials, includes attemptsLeft", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "locked out, includes lockoutTime in minutes", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"], "summary": "Admin logout", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/successResponse"}}}
            }
        },
        "/auth/verify": {
            "get": {
                "tags": ["auth"], "summary": "Verify admin session", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/externaldb-token": {
            "post": {
                "tags": ["auth"], "summary": "Mint realtime database token", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["projects"], "summary": "List portfolio projects", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/projectsResponse"}}}
            }
        },
        "/messages": {
            "post": {
                "tags": ["submissions"], "summary": "Submit a contact message",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/bookings": {
            "post": {
                "tags": ["submissions"], "summary": "Request a booking",
                "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/submissions": {
            "get": {
                "tags": ["admin"], "summary": "List all submissions, newest first", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/admin/messages": {
            "get": {
                "tags": ["admin"], "summary": "List contact messages", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/admin/messages/{id}": {
            "patch": {
                "tags": ["admin"], "summary": "Mark a message read or unread",
                "consumes": ["application/json"], "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true, "description": "Message id"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"], "summary": "Delete a message", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": "Message id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "tags": ["admin"], "summary": "List booking requests", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/admin/bookings/{id}": {
            "patch": {
                "tags": ["admin"], "summary": "Change a booking's status",
                "consumes": ["application/json"], "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true, "description": "Booking id"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateBookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"], "summary": "Delete a booking", "produces": ["application/json"],
                "security": [{"CookieAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": "Booking id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/successResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "user": {"type": "object", "properties": {"email": {"type": "string"}, "role": {"type": "string"}}},
        "loginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "loginResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "user": {"$ref": "#/definitions/user"}, "token": {"type": "string"}}},
        "sessionResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "user": {"$ref": "#/definitions/user"}}},
        "tokenResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "token": {"type": "string"}}},
        "successResponse": {"type": "object", "properties": {"success": {"type": "boolean"}}},
        "updateMessageRequest": {"type": "object", "required": ["read"], "properties": {"read": {"type": "boolean"}}},
        "updateBookingRequest": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["pending", "confirmed", "cancelled", "completed"]}}},
        "projectsResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "projects": {"type": "array", "items": {"type": "object"}}}},
        "errorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "attemptsLeft": {"type": "integer"},
                "lockoutTime": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Portfolio API",
	Description:      "Admin authentication, project listing and contact inbox for the portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
