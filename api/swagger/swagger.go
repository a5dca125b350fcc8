package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Daycare API", "description": "Daycare management backend: accounts, children, enrollments, attendance, content, contact and media.", "version": "1.0.0"},
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "paths": {
        "/auth/register": {
            "post": {"tags": ["Authentication"], "summary": "Register parent account", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/auth/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate user", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}, "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Current user", "produces": ["application/json"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/auth/profile": {
            "put": {"tags": ["Authentication"], "summary": "Update own profile", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/auth/change-password": {
            "put": {"tags": ["Authentication"], "summary": "Change password", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/users": {
            "get": {"tags": ["Users"], "summary": "List users", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "role", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Users"], "summary": "Create user", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/users/{id}": {
            "get": {"tags": ["Users"], "summary": "Get user", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Users"], "summary": "Update user", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Users"], "summary": "Deactivate user", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/children": {
            "get": {"tags": ["Children"], "summary": "List children", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}, {"name": "gender", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Children"], "summary": "Register child", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateChildRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/children/{id}": {
            "get": {"tags": ["Children"], "summary": "Get child", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Children"], "summary": "Update child", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateChildRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Children"], "summary": "Deactivate child", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/children/{id}/attendance": {
            "get": {"tags": ["Children"], "summary": "Child attendance history", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "from", "in": "query", "type": "string"}, {"name": "to", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/enrollments": {
            "get": {"tags": ["Enrollments"], "summary": "List enrollments", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "status", "in": "query", "type": "string"}, {"name": "child_id", "in": "query", "type": "string"}, {"name": "parent_id", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Enrollments"], "summary": "Create enrollment", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Open enrollment exists", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/enrollments/{id}": {
            "get": {"tags": ["Enrollments"], "summary": "Get enrollment", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Enrollments"], "summary": "Update enrollment", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEnrollmentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Enrollments"], "summary": "Delete enrollment", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/attendance/checkin": {
            "post": {"tags": ["Attendance"], "summary": "Check a child in", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Child not found", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Already checked in", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/attendance/checkout": {
            "post": {"tags": ["Attendance"], "summary": "Check a child out", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Not checked in today", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/attendance/today": {
            "get": {"tags": ["Attendance"], "summary": "Today's attendance board", "produces": ["application/json"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/attendance/child/{id}": {
            "get": {"tags": ["Attendance"], "summary": "Attendance history of a child", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "from", "in": "query", "type": "string"}, {"name": "to", "in": "query", "type": "string"}, {"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/attendance/report": {
            "get": {"tags": ["Attendance"], "summary": "Download the daily attendance sheet", "produces": ["application/json"], "parameters": [{"name": "date", "in": "query", "type": "string"}, {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/contacts": {
            "get": {"tags": ["Contacts"], "summary": "List contact messages", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "status", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Contacts"], "summary": "Submit the contact form", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitContactRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "429": {"description": "Too many submissions", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/contacts/{id}": {
            "get": {"tags": ["Contacts"], "summary": "Get contact message", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Contacts"], "summary": "Delete contact message", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/contacts/{id}/status": {
            "put": {"tags": ["Contacts"], "summary": "Update contact status", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateContactStatusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Already replied", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/uploads": {
            "get": {"tags": ["Uploads"], "summary": "List uploads", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "mimetype", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Uploads"], "summary": "Upload a file", "produces": ["application/json"], "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/uploads/multiple": {
            "post": {"tags": ["Uploads"], "summary": "Upload several files", "produces": ["application/json"], "parameters": [{"name": "files", "in": "formData", "required": true, "type": "file"}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/uploads/{id}": {
            "get": {"tags": ["Uploads"], "summary": "Get upload metadata", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Uploads"], "summary": "Delete upload", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/uploads/{id}/download": {
            "get": {"tags": ["Uploads"], "summary": "Download an uploaded file", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/articles": {
            "get": {"tags": ["Articles"], "summary": "List articles", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "status", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Articles"], "summary": "Create articles", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateContentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/articles/{id}": {
            "get": {"tags": ["Articles"], "summary": "Get articles", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Articles"], "summary": "Update articles", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateContentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Articles"], "summary": "Delete articles", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/news": {
            "get": {"tags": ["News"], "summary": "List news", "produces": ["application/json"], "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "status", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["News"], "summary": "Create news", "produces": ["application/json"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateContentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/news/{id}": {
            "get": {"tags": ["News"], "summary": "Get news", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["News"], "summary": "Update news", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateContentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["News"], "summary": "Delete news", "produces": ["application/json"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        }
    },
    "definitions": {
        "ErrorBody": {"type": "object", "properties": {"error": {"type": "string"}, "details": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}}, "required": ["error"]},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "limit": {"type": "integer"}, "total": {"type": "integer"}, "pages": {"type": "integer"}}},
        "SuccessEnvelope": {"type": "object", "properties": {"message": {"type": "string"}, "pagination": {"$ref": "#/definitions/Pagination"}}, "required": ["message"]},
        "RegisterRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "phone": {"type": "string"}}, "required": ["email", "password", "first_name", "last_name"]},
        "LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}, "required": ["email", "password"]},
        "UpdateProfileRequest": {"type": "object", "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "phone": {"type": "string"}}},
        "ChangePasswordRequest": {"type": "object", "properties": {"current_password": {"type": "string"}, "new_password": {"type": "string"}}, "required": ["current_password", "new_password"]},
        "CreateUserRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "phone": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "staff", "parent"]}}, "required": ["email", "password", "first_name", "last_name", "role"]},
        "UpdateUserRequest": {"type": "object", "properties": {"email": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "phone": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "staff", "parent"]}, "is_active": {"type": "boolean"}}},
        "CreateChildRequest": {"type": "object", "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "birth_date": {"type": "string", "format": "date"}, "gender": {"type": "string", "enum": ["male", "female", "other"]}, "medical_info": {"type": "string"}, "emergency_contact_name": {"type": "string"}, "emergency_contact_phone": {"type": "string"}, "photo_url": {"type": "string"}}, "required": ["first_name", "last_name", "birth_date", "gender"]},
        "UpdateChildRequest": {"type": "object", "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "birth_date": {"type": "string", "format": "date"}, "gender": {"type": "string", "enum": ["male", "female", "other"]}, "medical_info": {"type": "string"}, "emergency_contact_name": {"type": "string"}, "emergency_contact_phone": {"type": "string"}, "photo_url": {"type": "string"}}},
        "CreateEnrollmentRequest": {"type": "object", "properties": {"child_id": {"type": "string"}, "parent_id": {"type": "string"}, "status": {"type": "string", "enum": ["pending", "approved", "rejected", "cancelled"]}, "enrollment_date": {"type": "string", "format": "date"}, "notes": {"type": "string"}}, "required": ["child_id"]},
        "UpdateEnrollmentRequest": {"type": "object", "properties": {"status": {"type": "string", "enum": ["pending", "approved", "rejected", "cancelled"]}, "enrollment_date": {"type": "string", "format": "date"}, "notes": {"type": "string"}}},
        "AttendanceRequest": {"type": "object", "properties": {"child_id": {"type": "string"}, "notes": {"type": "string"}}, "required": ["child_id"]},
        "CreateContentRequest": {"type": "object", "properties": {"title_fr": {"type": "string"}, "title_en": {"type": "string"}, "content_fr": {"type": "string"}, "content_en": {"type": "string"}, "excerpt_fr": {"type": "string"}, "excerpt_en": {"type": "string"}, "category": {"type": "string"}, "image_url": {"type": "string"}, "status": {"type": "string", "enum": ["draft", "published"]}}, "required": ["title_fr", "title_en", "content_fr", "content_en"]},
        "UpdateContentRequest": {"type": "object", "properties": {"title_fr": {"type": "string"}, "title_en": {"type": "string"}, "content_fr": {"type": "string"}, "content_en": {"type": "string"}, "excerpt_fr": {"type": "string"}, "excerpt_en": {"type": "string"}, "category": {"type": "string"}, "image_url": {"type": "string"}, "status": {"type": "string", "enum": ["draft", "published"]}}},
        "SubmitContactRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "subject": {"type": "string"}, "message": {"type": "string"}}, "required": ["name", "email", "subject", "message"]},
        "UpdateContactStatusRequest": {"type": "object", "properties": {"status": {"type": "string", "enum": ["read", "replied"]}}, "required": ["status"]}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
