package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Mi Uni API",
        "description": "Academic progress and curriculum engine",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Curriculum", "description": "Plan catalog and prerequisite graph"},
        {"name": "Enrollments", "description": "Career enrollments and subject ledger"},
        {"name": "AcademicYear", "description": "Per-user academic year scope"},
        {"name": "Courses", "description": "In-progress coursework and partial grades"},
        {"name": "Progress", "description": "Derived progress statistics"},
        {"name": "Reports", "description": "Transcript export"}
    ],
    "paths": {
        "/plans": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List study plans",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/{planId}/subjects": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List, filter and group a plan's subjects",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "weeklyHours", "in": "query", "type": "integer"},
                    {"name": "prerequisiteName", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Status filtering unavailable"}
                }
            }
        },
        "/plans/{planId}/subjects/{subjectId}/prerequisites": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List a subject's prerequisites",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/{planId}/subjects/{subjectId}/unlocks": {
            "get": {
                "tags": ["Curriculum"],
                "summary": "List the subjects a given subject unlocks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/careers": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List the user's career enrollments",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/careers/{planId}": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Join a study plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled"},
                    "412": {"description": "Plan has no subjects"}
                }
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Leave a study plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not enrolled"}
                }
            }
        },
        "/careers/{planId}/records": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List the user's subject records for a plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/careers/{planId}/subjects/{subjectId}/status": {
            "put": {
                "tags": ["Enrollments"],
                "summary": "Overwrite a subject record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Subject not part of plan enrollment"}
                }
            }
        },
        "/academic-year": {
            "get": {
                "tags": ["AcademicYear"],
                "summary": "Get the current academic year scope",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No academic year set"}
                }
            },
            "post": {
                "tags": ["AcademicYear"],
                "summary": "Adopt the active term's year",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No active term"}
                }
            },
            "put": {
                "tags": ["AcademicYear"],
                "summary": "Change the academic year, dropping active courses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeYearRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Year out of allowed range"}
                }
            },
            "delete": {
                "tags": ["AcademicYear"],
                "summary": "Clear the academic year, dropping active courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "No academic year set"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List the user's active courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/summary": {
            "get": {
                "tags": ["Progress"],
                "summary": "Summary of the user's active courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/careers/{planId}/subjects/{subjectId}/course": {
            "post": {
                "tags": ["Courses"],
                "summary": "Start a course for a plan subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already in progress"},
                    "412": {"description": "No academic year set"}
                }
            },
            "get": {
                "tags": ["Courses"],
                "summary": "Get a single active course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found"}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "End a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/careers/{planId}/subjects/{subjectId}/course/grades": {
            "patch": {
                "tags": ["Courses"],
                "summary": "Record partial or makeup grades",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseGradePatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Grade out of range"}
                }
            }
        },
        "/careers/{planId}/progress": {
            "get": {
                "tags": ["Progress"],
                "summary": "Progress snapshot for a plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/careers/{planId}/transcript": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the plan transcript",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "planId", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered transcript"}
                }
            }
        }
    },
    "definitions": {
        "SetStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["PENDING", "IN_PROGRESS", "REGULARIZED", "AWAITING_FINAL", "APPROVED"]},
                "grade": {"type": "number", "minimum": 1, "maximum": 10},
                "year_taken": {"type": "integer"},
                "semester_taken": {"type": "integer", "minimum": 0, "maximum": 2}
            }
        },
        "ChangeYearRequest": {
            "type": "object",
            "required": ["year"],
            "properties": {
                "year": {"type": "integer"}
            }
        },
        "CourseGradePatch": {
            "type": "object",
            "properties": {
                "first_partial": {"type": "number", "minimum": 1, "maximum": 10},
                "second_partial": {"type": "number", "minimum": 1, "maximum": 10},
                "first_makeup": {"type": "number", "minimum": 1, "maximum": 10},
                "second_makeup": {"type": "number", "minimum": 1, "maximum": 10}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
