// Package docs registers the Swagger 2.0 document served under /swagger.
// Keep it in sync with the swag annotations in httpserver.
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
        "/api/films": {
            "get": {
                "description": "All films with their Bechdel test outcome, optionally paginated",
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "List Films",
                "parameters": [
                    {"type": "integer", "description": "1-based page, default 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Films per page (1-10000), default all", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/film.FilmResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/api/films/{year}": {
            "get": {
                "description": "Films released in the given year, optionally paginated",
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "List Films By Year",
                "parameters": [
                    {"type": "integer", "description": "Release year", "name": "year", "in": "path", "required": true},
                    {"type": "integer", "description": "1-based page, default 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Films per page (1-10000), default all", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/film.FilmResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/api/years": {
            "get": {
                "description": "Distinct release years present in the dataset, ascending",
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "List Years",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "integer"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/api/dataset": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Source, size and load time of the served snapshot",
                "produces": ["application/json"],
                "tags": ["dataset"],
                "summary": "Dataset Info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dataset.Info"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/api/dataset/reload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Re-read the source and swap in the new snapshot; the current one is kept on failure",
                "produces": ["application/json"],
                "tags": ["dataset"],
                "summary": "Reload Dataset",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dataset.Info"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/healthcheck": {
            "get": {
                "description": "Check if server is alive and whether a dataset snapshot is served",
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dataset.Info": {
            "type": "object",
            "properties": {
                "films": {"type": "integer"},
                "loadedAt": {"type": "string"},
                "source": {"type": "string"},
                "years": {"type": "integer"}
            }
        },
        "film.Film": {
            "type": "object",
            "properties": {
                "binary": {"type": "string", "enum": ["PASS", "FAIL"]},
                "budget": {"type": "integer"},
                "budget2013": {"type": "integer"},
                "cleanTest": {"type": "string"},
                "code": {"type": "string"},
                "decadeCode": {"type": "integer"},
                "domGross": {"type": "integer"},
                "domGross2013": {"type": "integer"},
                "imdb": {"type": "string"},
                "intGross": {"type": "integer"},
                "intGross2013": {"type": "integer"},
                "periodCode": {"type": "integer"},
                "test": {"type": "string"},
                "title": {"type": "string"},
                "year": {"type": "integer"}
            }
        },
        "film.FilmResult": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/film.Film"}},
                "totalCount": {"type": "integer"}
            }
        },
        "httpserver.APIResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "info": {"type": "string"},
                "message": {"type": "string"},
                "result": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "v1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bechdel Test API",
	Description:      "Bechdel Test API using data from FiveThirtyEight.com",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
