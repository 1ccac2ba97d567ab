// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate the paths with `go generate ./cmd/server`.
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/delegated-login": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Redeem a delegated login token",
                "parameters": [{"type": "string", "name": "token", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/super-admin-token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue a delegated login token",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/profiles": {
            "get": {"tags": ["profiles"], "summary": "List profiles", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["profiles"], "summary": "Create a profile", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/officials": {
            "get": {"tags": ["officials"], "summary": "Provincial officials grouped by office", "responses": {"200": {"description": "OK"}}}
        },
        "/api/municipalities": {
            "get": {"tags": ["municipalities"], "summary": "List municipalities", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["municipalities"], "summary": "Create a municipality", "responses": {"201": {"description": "Created"}}}
        },
        "/api/directories": {
            "get": {"tags": ["directories"], "summary": "List directory entries", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["directories"], "summary": "Create a directory entry", "responses": {"201": {"description": "Created"}}}
        },
        "/api/news": {
            "get": {"tags": ["news"], "summary": "List news", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["news"], "summary": "Create an article", "responses": {"201": {"description": "Created"}}}
        },
        "/api/gazette": {
            "get": {"tags": ["gazette"], "summary": "List gazette entries", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["gazette"], "summary": "Add a gazette entry", "responses": {"201": {"description": "Created"}}}
        },
        "/api/activity": {
            "get": {"tags": ["activity"], "summary": "Recent admin activity", "responses": {"200": {"description": "OK"}}}
        },
        "/api/municipal-admins": {
            "get": {"tags": ["municipal-admins"], "summary": "List municipal admins", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["municipal-admins"], "summary": "Create a municipal admin", "responses": {"201": {"description": "Created"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tawi-Tawi Provincial Portal API",
	Description:      "Content management API for the provincial government portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
