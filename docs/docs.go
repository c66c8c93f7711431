// Package docs registers the admin API description served at /swagger.
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
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/healthz": {
            "get": {
                "tags": ["system"],
                "summary": "Dependency health",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in with the identity service",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loginReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResp"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/dashboard": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["dashboard"],
                "summary": "Summary tiles and recent activity",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboardResp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/views": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["views"],
                "summary": "Open and load a review view",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/viewResp"}},
                    "502": {"description": "load failed, the view stays open for reload", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/views/{viewID}": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["views"],
                "summary": "Filter a review view",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "viewID", "in": "path", "required": true},
                    {"type": "string", "description": "all, pending, approved or rejected", "name": "status", "in": "query"},
                    {"type": "string", "description": "company name or about text", "name": "search", "in": "query"},
                    {"type": "string", "description": "exact category", "name": "category", "in": "query"},
                    {"type": "string", "description": "exact product type", "name": "productType", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/viewResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["views"],
                "summary": "Close a review view",
                "parameters": [
                    {"type": "string", "name": "viewID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/views/{viewID}/reload": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["views"],
                "summary": "Reload a review view from the directory",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "viewID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/viewResp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/views/{viewID}/startups/{id}/{action}": {
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["views"],
                "summary": "Accept, reject or reset a startup in a view",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "viewID", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "enum": ["accept", "reject", "pending"], "name": "action", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/startupResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResp"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/startups/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["startups"],
                "summary": "Startup detail",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/startupResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        },
        "/api/startups/{id}/status": {
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["startups"],
                "summary": "Change a startup's status from the detail screen",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/statusReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/startupResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResp"}}
                }
            }
        }
    },
    "definitions": {
        "errorResp": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "viewId": {"type": "string"}
            }
        },
        "loginReq": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "loginResp": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"},
                "admin": {
                    "type": "object",
                    "properties": {
                        "email": {"type": "string"},
                        "name": {"type": "string"}
                    }
                }
            }
        },
        "statusReq": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]}
            }
        },
        "countsResp": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "pending": {"type": "integer"},
                "approved": {"type": "integer"},
                "rejected": {"type": "integer"}
            }
        },
        "startupResp": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "companyName": {"type": "string"},
                "founderName": {"type": "string"},
                "founderEmail": {"type": "string"},
                "instituteName": {"type": "string"},
                "about": {"type": "string"},
                "category": {"type": "string"},
                "productType": {"type": "string"},
                "industry": {"type": "string"},
                "teamSize": {"type": "string"},
                "funding": {"type": "string"},
                "fundingStage": {"type": "string"},
                "foundedDate": {"type": "string"},
                "location": {"type": "string"},
                "phone": {"type": "string"},
                "links": {
                    "type": "object",
                    "properties": {
                        "website": {"type": "string"},
                        "linkedin": {"type": "string"},
                        "instagram": {"type": "string"},
                        "twitter": {"type": "string"}
                    }
                },
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "createdAt": {"type": "string", "format": "date-time"},
                "appliedOn": {"type": "string"},
                "actions": {"type": "array", "items": {"type": "string", "enum": ["accept", "reject", "pending"]}}
            }
        },
        "viewResp": {
            "type": "object",
            "properties": {
                "viewId": {"type": "string"},
                "loaded": {"type": "boolean"},
                "loadError": {"type": "string"},
                "filter": {
                    "type": "object",
                    "properties": {
                        "status": {"type": "string"},
                        "search": {"type": "string"},
                        "category": {"type": "string"},
                        "productType": {"type": "string"}
                    }
                },
                "counts": {"$ref": "#/definitions/countsResp"},
                "facets": {
                    "type": "object",
                    "properties": {
                        "categories": {"type": "array", "items": {"type": "string"}},
                        "productTypes": {"type": "array", "items": {"type": "string"}}
                    }
                },
                "inFlight": {"type": "array", "items": {"type": "string"}},
                "startups": {"type": "array", "items": {"$ref": "#/definitions/startupResp"}}
            }
        },
        "activityResp": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["signed_in", "status_changed"]},
                "actor": {"type": "string"},
                "applicationId": {"type": "string"},
                "companyName": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "message": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "dashboardResp": {
            "type": "object",
            "properties": {
                "counts": {"$ref": "#/definitions/countsResp"},
                "recentActivity": {"type": "array", "items": {"$ref": "#/definitions/activityResp"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Startup Review Admin API",
	Description:      "Review, filter and decide on startup applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
