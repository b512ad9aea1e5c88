// Package docs holds the OpenAPI document served under /swagger.
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
        "/ping": {"get": {"tags": ["health"], "summary": "Ping", "responses": {"200": {"description": "OK"}}}},
        "/api/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Login user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/user/profile": {"get": {"security": [{"Bearer": []}], "tags": ["user"], "summary": "Get user profile", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/quran/chapters": {"get": {"tags": ["quran"], "summary": "List chapters", "responses": {"200": {"description": "OK"}}}},
        "/api/quran/chapter/{id}/verses": {"get": {"tags": ["quran"], "summary": "List verses of a chapter", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "per_page", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/quran/verse/{id}/{verse}/audio": {"get": {"tags": ["quran"], "summary": "Get verse audio", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "verse", "in": "path", "required": true}, {"type": "string", "name": "reciter", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/quran/reciters": {"get": {"tags": ["quran"], "summary": "List reciters", "responses": {"200": {"description": "OK"}}}},
        "/api/learning/session": {"post": {"security": [{"Bearer": []}], "tags": ["learning"], "summary": "Record a learning session", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/learning/progress": {
            "get": {"security": [{"Bearer": []}], "tags": ["learning"], "summary": "Get learning progress", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["learning"], "summary": "Update verse progress", "responses": {"200": {"description": "OK"}}}
        },
        "/api/leaderboard": {"get": {"tags": ["leaderboard"], "summary": "Get leaderboard", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/create-payment-intent": {"post": {"security": [{"Bearer": []}], "tags": ["payments"], "summary": "Create payment intent", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/stripe-webhook": {"post": {"tags": ["payments"], "summary": "Payment webhook", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/subscription-status": {"get": {"security": [{"Bearer": []}], "tags": ["payments"], "summary": "Subscription status", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "My Quran Journey API",
	Description:      "Quran learning backend with progress tracking and gamification.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
