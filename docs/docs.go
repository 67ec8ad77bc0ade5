// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/match": {
            "post": {
                "description": "Upload a résumé (PDF, DOCX or text). The response is the ranked list of listings gathered from every enabled source; an unreachable source only reduces the list.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Match a résumé against job listings",
                "parameters": [
                    {"type": "file", "description": "Résumé file (field cv or cv_file)", "name": "cv", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Keep listings with salary information only", "name": "only_paid", "in": "query"},
                    {"type": "integer", "description": "Accepted for compatibility, not applied", "name": "recent_minutes", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Ranked listings", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Listing"}}},
                    "400": {"description": "Missing or unreadable résumé", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/parse-cv": {
            "post": {
                "description": "Build the keyword profile and search queries of a résumé without searching any source",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["CV"],
                "summary": "Parse CV",
                "parameters": [
                    {"description": "Résumé text (JSON)", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/models.ProfileRequest"}},
                    {"type": "file", "description": "Résumé file (field cv or cv_file)", "name": "cv", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Derived profile", "schema": {"$ref": "#/definitions/models.ProfileResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/contact-hr": {
            "post": {
                "description": "Fill the outreach template. When hr_email is empty the address is derived from the company name. No email is sent.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Contact"],
                "summary": "Draft an email to HR",
                "parameters": [
                    {"description": "Listing and candidate details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "Drafted email", "schema": {"$ref": "#/definitions/models.ContactResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/tools": {
            "get": {
                "description": "Get the MCP tools exposing each pipeline stage and the enabled sources",
                "produces": ["application/json"],
                "tags": ["Tools"],
                "summary": "List available tools",
                "responses": {
                    "200": {"description": "List of tools", "schema": {"$ref": "#/definitions/handlers.ToolsResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the server is running and healthy",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Server is healthy", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ToolsResponse": {
            "type": "object",
            "properties": {
                "tools": {"type": "array", "items": {"type": "object"}},
                "sources": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Listing": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "company": {"type": "string"},
                "location": {"type": "string"},
                "url": {"type": "string"},
                "source": {"type": "string"},
                "match_score": {"type": "number"},
                "snippet": {"type": "string"},
                "published_at": {"type": "string"},
                "is_paid": {"type": "boolean"},
                "salary_text": {"type": "string"}
            }
        },
        "models.ContactRequest": {
            "type": "object",
            "required": ["candidate_name", "company", "job_title"],
            "properties": {
                "job_title": {"type": "string"},
                "company": {"type": "string"},
                "hr_email": {"type": "string"},
                "candidate_name": {"type": "string"},
                "candidate_email": {"type": "string"},
                "cv_summary": {"type": "string"}
            }
        },
        "models.ContactResponse": {
            "type": "object",
            "properties": {
                "to": {"type": "string"},
                "subject": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "models.ProfileRequest": {
            "type": "object",
            "required": ["cv_text"],
            "properties": {
                "cv_text": {"type": "string"}
            }
        },
        "models.ProfileResponse": {
            "type": "object",
            "properties": {
                "profile": {"type": "object"},
                "queries": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer"},
                "details": {"type": "string"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "timestamp": {"type": "string"}
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
	Title:            "JobMatch API",
	Description:      "Résumé to job listing matching: profile extraction, multi-source search and ranking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
