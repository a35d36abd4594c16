// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/visitorpass/main.go -o docs
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
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/passes/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["passes"],
                "summary": "Verify a pass at a checkpoint",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.verifyPassRequest"}}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "pass expired or revoked"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/scan": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["check-logs"],
                "summary": "Scan a pass QR code at a checkpoint",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.scanRequest"}}],
                "responses": {"200": {"description": "duplicate scan"}, "201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/visitors/pre-register": {
            "post": {
                "tags": ["visitors"],
                "summary": "Visitor self pre-registration",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.preRegisterRequest"}}],
                "responses": {"201": {"description": "Created"}, "429": {"description": "Too Many Requests"}}
            }
        }
    },
    "definitions": {
        "handler.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string"}}
        },
        "handler.verifyPassRequest": {
            "type": "object",
            "properties": {"pass_id": {"type": "string"}}
        },
        "handler.scanRequest": {
            "type": "object",
            "properties": {"payload": {"type": "string"}, "action": {"type": "string"}, "location": {"type": "string"}}
        },
        "handler.preRegisterRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "host": {"type": "string"},
                "purpose": {"type": "string"},
                "appointment_date": {"type": "string"},
                "host_email": {"type": "string"},
                "host_department": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Visitor Pass API",
	Description:      "Visitor registration, appointment approval, pass issuance and checkpoint logging.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
