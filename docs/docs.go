// Package docs registers the OpenAPI description served at /swagger.
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
    "paths": {
        "/register": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /profile, or back to /register with a flashed error"}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /board, or back to /login with a flashed error"}
                }
            }
        },
        "/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "302": {"description": "redirect to /login"}
                }
            }
        },
        "/update": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Update profile",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData"},
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "bio", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "redirect to /profile, or back to /edit on failure"}
                }
            }
        },
        "/board": {
            "get": {
                "produces": ["text/html"],
                "tags": ["board"],
                "summary": "Board feed",
                "responses": {
                    "200": {"description": "feed page"},
                    "302": {"description": "redirect to /login when anonymous"}
                }
            }
        },
        "/post": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["board"],
                "summary": "Create a post",
                "parameters": [
                    {"type": "file", "name": "image", "in": "formData", "required": true},
                    {"type": "string", "name": "caption", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "redirect to /board, or back to /upload on failure"}
                }
            }
        },
        "/save/{postid}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Toggle a pin",
                "parameters": [
                    {"type": "string", "name": "postid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "the resulting pinned set", "schema": {"type": "object", "properties": {"pinned": {"type": "array", "items": {"type": "string"}}}}},
                    "500": {"description": "toggle failed", "schema": {"type": "object", "properties": {"success": {"type": "boolean"}}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "process alive"}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "dependencies healthy"},
                    "503": {"description": "a dependency is down"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Boardly API",
	Description:      "Session-authenticated content board.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
