// Package docs registers the OpenAPI document served by gin-swagger. The
// handler annotations are the source; regenerate with
// swag init -g cmd/service/main.go -o docs.
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
        "/api/v1/quotes/calculate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Calculate a quote",
                "parameters": [
                    {"type": "number", "description": "Width in cm", "name": "width", "in": "query"},
                    {"type": "number", "description": "Height in cm", "name": "height", "in": "query"},
                    {"type": "string", "description": "vinyl or canvas (vinil and lona are accepted)", "name": "material", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Calculate a quote",
                "parameters": [
                    {"description": "Job to price", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pricing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Get the price table",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PricingResponse"}}
                }
            }
        },
        "/api/v1/blog/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blog"],
                "summary": "List published posts",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/blog/posts/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blog"],
                "summary": "Get a published post",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Send a contact message",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ContactRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ReceiptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/quote-requests": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Request a quote follow-up",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.QuoteSubmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ReceiptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "boolean", "name": "published", "in": "query"},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostPage"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a post",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get a post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/submissions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get an archived submission",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SubmissionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/-/live": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/-/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/-/build": {
            "get": {"tags": ["health"], "summary": "Build information", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "traceId": {"type": "string"}
            }
        },
        "dto.QuoteRequest": {
            "type": "object",
            "required": ["material"],
            "properties": {
                "width": {"type": "number"},
                "height": {"type": "number"},
                "material": {"type": "string", "enum": ["vinyl", "canvas"]}
            }
        },
        "dto.QuoteResponse": {
            "type": "object",
            "properties": {
                "width": {"type": "number"},
                "height": {"type": "number"},
                "material": {"type": "string"},
                "materialName": {"type": "string"},
                "area": {"type": "string"},
                "unitPrice": {"type": "string"},
                "baseUnitPrice": {"type": "string"},
                "subtotal": {"type": "string"},
                "tax": {"type": "string"},
                "taxRate": {"type": "string"},
                "total": {"type": "string"},
                "hasBulkDiscount": {"type": "boolean"},
                "savings": {"type": "string"},
                "currency": {"type": "string"}
            }
        },
        "dto.MaterialPriceResponse": {
            "type": "object",
            "properties": {
                "material": {"type": "string"},
                "name": {"type": "string"},
                "basePrice": {"type": "string"},
                "discountedPrice": {"type": "string"}
            }
        },
        "dto.RangeResponse": {
            "type": "object",
            "properties": {"min": {"type": "number"}, "max": {"type": "number"}}
        },
        "dto.PricingResponse": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "materials": {"type": "array", "items": {"$ref": "#/definitions/dto.MaterialPriceResponse"}},
                "discountThresholdM2": {"type": "string"},
                "taxRate": {"type": "string"},
                "width": {"$ref": "#/definitions/dto.RangeResponse"},
                "height": {"$ref": "#/definitions/dto.RangeResponse"}
            }
        },
        "dto.PostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "content": {"type": "string"},
                "excerpt": {"type": "string"},
                "imageUrl": {"type": "string"},
                "metaDescription": {"type": "string"},
                "published": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "dto.PostPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.PostResponse"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "dto.CreatePostRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "slug": {"type": "string", "maxLength": 100},
                "content": {"type": "string"},
                "excerpt": {"type": "string", "maxLength": 500},
                "imageUrl": {"type": "string"},
                "metaDescription": {"type": "string", "maxLength": 160},
                "published": {"type": "boolean"}
            }
        },
        "dto.UpdatePostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "slug": {"type": "string", "maxLength": 100},
                "content": {"type": "string"},
                "excerpt": {"type": "string", "maxLength": 500},
                "imageUrl": {"type": "string"},
                "metaDescription": {"type": "string", "maxLength": 160},
                "published": {"type": "boolean"}
            }
        },
        "dto.ContactRequest": {
            "type": "object",
            "required": ["name", "email", "message"],
            "properties": {
                "name": {"type": "string", "minLength": 2, "maxLength": 100},
                "email": {"type": "string"},
                "phone": {"type": "string", "maxLength": 20},
                "message": {"type": "string", "minLength": 10, "maxLength": 1000}
            }
        },
        "dto.QuoteSubmissionRequest": {
            "type": "object",
            "required": ["name", "email", "phone", "width", "height", "material"],
            "properties": {
                "name": {"type": "string", "minLength": 2, "maxLength": 100},
                "email": {"type": "string"},
                "phone": {"type": "string", "minLength": 10, "maxLength": 20},
                "details": {"type": "string", "maxLength": 2000},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "material": {"type": "string", "enum": ["vinyl", "canvas"]}
            }
        },
        "dto.ReceiptResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["contact", "quote"]},
                "notificationId": {"type": "string"},
                "quote": {"$ref": "#/definitions/dto.QuoteResponse"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "dto.SubmissionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "message": {"type": "string"},
                "quote": {"$ref": "#/definitions/dto.QuoteResponse"},
                "notificationId": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
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
	Title:            "Printologia Print Shop API",
	Description:      "Quote engine, blog and customer submissions of the print shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
