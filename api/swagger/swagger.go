package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sun Class Web",
        "description": "Browser-facing web tier of the Sun Class classroom. Page loads answer JSON envelopes, form actions answer action results.",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Session",
            "description": "Sign in, register and sign out"
        },
        {
            "name": "Classes",
            "description": "Class list, creation and membership"
        },
        {
            "name": "Profile",
            "description": "Own account"
        },
        {
            "name": "Assignments",
            "description": "Assignment pages and materials"
        },
        {
            "name": "Submissions",
            "description": "Student submission actions"
        },
        {
            "name": "Grading",
            "description": "Teacher submissions views, grading and export"
        },
        {
            "name": "Files",
            "description": "Attachment downloads"
        },
        {
            "name": "Operations",
            "description": "Health, readiness and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Readiness of optional dependencies",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Degraded"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Sign in",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "401": {
                        "description": "Invalid email or password",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/register": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Create an account and sign in",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "name",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/logout": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Sign out",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    }
                }
            }
        },
        "/": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "Own classes",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    }
                }
            }
        },
        "/actions/create-class": {
            "post": {
                "tags": [
                    "Classes"
                ],
                "summary": "Create class",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "title",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "description",
                        "in": "formData",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/actions/join-class": {
            "post": {
                "tags": [
                    "Classes"
                ],
                "summary": "Join class",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "joinCode",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "404": {
                        "description": "Unknown join code",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "409": {
                        "description": "Already a member",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/profile": {
            "get": {
                "tags": [
                    "Profile"
                ],
                "summary": "Own profile",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    }
                }
            },
            "post": {
                "tags": [
                    "Profile"
                ],
                "summary": "Edit profile",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "name",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "avatar_url",
                        "in": "formData",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "Class page",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "403": {
                        "description": "Not a member",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Class not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/assignments": {
            "post": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Create assignment",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "title",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "description",
                        "in": "formData",
                        "type": "string"
                    },
                    {
                        "name": "due_date",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "points",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "403": {
                        "description": "Teacher only",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/assignment/{assignment_id}": {
            "get": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Assignment page",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "assignment_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "404": {
                        "description": "Assignment not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/assignment/{assignment_id}/files": {
            "post": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Upload submission files",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "assignment_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "files",
                        "in": "formData",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "403": {
                        "description": "Students only",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "409": {
                        "description": "Already graded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/assignment/{assignment_id}/files/delete": {
            "post": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Delete a submission file",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "assignment_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "fileId",
                        "in": "formData",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "No file chosen",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "404": {
                        "description": "File not found",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "409": {
                        "description": "Already graded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/assignment/{assignment_id}/cancel": {
            "post": {
                "tags": [
                    "Submissions"
                ],
                "summary": "Cancel submission",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "assignment_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "404": {
                        "description": "Nothing submitted",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "409": {
                        "description": "Already graded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/assignment/{assignment_id}/materials": {
            "post": {
                "tags": [
                    "Assignments"
                ],
                "summary": "Save materials",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "assignment_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "files",
                        "in": "formData",
                        "type": "file",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "400": {
                        "description": "No files",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "403": {
                        "description": "Teacher only",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/submissions": {
            "get": {
                "tags": [
                    "Grading"
                ],
                "summary": "Class submissions",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "403": {
                        "description": "Teacher only",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/submissions/export": {
            "get": {
                "tags": [
                    "Grading"
                ],
                "summary": "Export gradebook",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "description": "csv or pdf"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Gradebook",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Unknown format",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Teacher only",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/submissions/{submission_id}": {
            "get": {
                "tags": [
                    "Grading"
                ],
                "summary": "Submission detail",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "submission_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "403": {
                        "description": "Teacher only",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Submission not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/submissions/{submission_id}/grade": {
            "post": {
                "tags": [
                    "Grading"
                ],
                "summary": "Grade submission",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "submission_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "grade",
                        "in": "formData",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "204": {
                        "description": "Blank grade, nothing changed"
                    },
                    "400": {
                        "description": "Grade must be a number",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "404": {
                        "description": "Submission not found",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "422": {
                        "description": "Grade out of range",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/submissions/{submission_id}/cancel-grade": {
            "post": {
                "tags": [
                    "Grading"
                ],
                "summary": "Cancel grade",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "submission_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Action succeeded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "303": {
                        "description": "Session missing or expired; redirect to login"
                    },
                    "404": {
                        "description": "Submission not found",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    },
                    "409": {
                        "description": "Not graded",
                        "schema": {
                            "$ref": "#/definitions/ActionResult"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/files/submission/{file_id}": {
            "get": {
                "tags": [
                    "Files"
                ],
                "summary": "Download a submission file",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "file_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File content",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "403": {
                        "description": "Not allowed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/class/{class_id}/files/material/{file_id}": {
            "get": {
                "tags": [
                    "Files"
                ],
                "summary": "Download a material file",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "class_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "file_id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File content",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "403": {
                        "description": "Not allowed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        },
        "ActionResult": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {
                    "type": "object"
                },
                "error": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        }
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
