// Package docs holds the OpenAPI document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List articles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/article.DTO"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Create article",
                "parameters": [
                    {"description": "Article fields", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/article.WriteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Get article",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "tags": ["articles"],
                "summary": "Update article",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/article.WriteRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["articles"],
                "summary": "Delete article",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products page",
                "parameters": [{"type": "integer", "default": 1, "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.ProductPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/products/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Search products",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.ProductSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/products/lookup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Find product by name",
                "parameters": [{"type": "string", "name": "name", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.ProductSummary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/products/with-images": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products with images",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.ProductWithImage"}}}
                }
            }
        },
        "/shopping-list": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shopping-list"],
                "summary": "List shopping list page",
                "parameters": [{"type": "integer", "default": 1, "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.ShoppingPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/shopping-list/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shopping-list"],
                "summary": "Search shopping list",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.ShoppingItem"}}}
                }
            }
        },
        "/shopping-list/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shopping-list"],
                "summary": "Recently added items",
                "parameters": [{"minimum": 0, "type": "integer", "name": "days", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.ShoppingItemAdded"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/shopping-list/totals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shopping-list"],
                "summary": "Total cost per category",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.CategoryTotal"}}}
                }
            }
        },
        "/videos/popular": {
            "get": {
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Most popular videos",
                "parameters": [{"minimum": 0, "type": "integer", "name": "days", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.VideoViewCount"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "article.DTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "First test post!"},
                "content": {"type": "string", "example": "Lorem ipsum dolor sit amet"},
                "date_published": {"type": "string", "example": "2029-01-22T16:28:32.615Z"}
            }
        },
        "article.WriteRequest": {
            "type": "object",
            "description": "Absent keys are left alone; null writes NULL.",
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 500, "x-nullable": true, "example": "Test new title"},
                "content": {"type": "string", "maxLength": 100000, "x-nullable": true, "example": "Test new content"},
                "date_published": {"type": "string", "format": "date-time", "x-nullable": true, "example": "2029-01-22T16:28:32.615Z"}
            }
        },
        "catalog.ProductPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/entity.ProductSummary"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "catalog.ShoppingPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/entity.ShoppingItemName"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "entity.ProductSummary": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"}
            }
        },
        "entity.ProductWithImage": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "entity.ShoppingItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"}
            }
        },
        "entity.ShoppingItemName": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "entity.ShoppingItemAdded": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "date_added": {"type": "string"}
            }
        },
        "entity.CategoryTotal": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "entity.VideoViewCount": {
            "type": "object",
            "properties": {
                "video_name": {"type": "string"},
                "region": {"type": "string"},
                "views": {"type": "integer"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"type": "object"}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "not found"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blogful API",
	Description:      "Articles CRUD and catalog listings over Postgres.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
