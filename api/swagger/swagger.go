package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Classboard API",
        "description": "Classroom display status engine and schedule management",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Board", "description": "Display status and clock control"},
        {"name": "Overrides", "description": "Operator override flags"},
        {"name": "Schedule", "description": "Time slot and day-type configuration"},
        {"name": "Authentication", "description": "Operator login"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "Metrics exposition"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/board/status": {
            "get": {
                "tags": ["Board"],
                "summary": "Current display status",
                "responses": {
                    "200": {"description": "Latest snapshot", "schema": {"$ref": "#/definitions/StatusSnapshot"}}
                }
            }
        },
        "/api/v1/board/preview": {
            "get": {
                "tags": ["Board"],
                "summary": "Preview display status at an instant",
                "parameters": [
                    {"name": "at", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Evaluated snapshot", "schema": {"$ref": "#/definitions/StatusSnapshot"}},
                    "400": {"description": "Invalid instant"}
                }
            }
        },
        "/api/v1/board/slots": {
            "get": {
                "tags": ["Board"],
                "summary": "Effective schedule for a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": false, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Slot list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/board/clock-offset": {
            "get": {
                "tags": ["Board"],
                "summary": "Current clock offset",
                "responses": {
                    "200": {"description": "Offset", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Board"],
                "summary": "Shift the display clock",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClockOffsetRequest"}}
                ],
                "responses": {
                    "200": {"description": "Applied offset"},
                    "400": {"description": "Invalid duration"}
                }
            }
        },
        "/api/v1/board/refresh": {
            "post": {
                "tags": ["Board"],
                "summary": "Force a schedule reload on the next tick",
                "responses": {
                    "204": {"description": "Accepted"}
                }
            }
        },
        "/api/v1/overrides": {
            "get": {
                "tags": ["Overrides"],
                "summary": "Current override flags",
                "responses": {
                    "200": {"description": "Flags", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/overrides/eco": {
            "put": {
                "tags": ["Overrides"],
                "summary": "Toggle manual eco mode",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Flags after change"}
                }
            }
        },
        "/api/v1/overrides/auto-eco": {
            "put": {
                "tags": ["Overrides"],
                "summary": "Toggle the auto-eco override",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Flags after change"}
                }
            }
        },
        "/api/v1/overrides/special": {
            "post": {
                "tags": ["Overrides"],
                "summary": "Activate a special broadcast",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SpecialRequest"}}
                ],
                "responses": {
                    "200": {"description": "Flags after change"},
                    "400": {"description": "Unknown submode"}
                }
            },
            "delete": {
                "tags": ["Overrides"],
                "summary": "Clear the special broadcast",
                "responses": {
                    "200": {"description": "Flags after change"}
                }
            }
        },
        "/api/v1/schedule/slots": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List configured time slots",
                "responses": {
                    "200": {"description": "Slot list"}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Create a time slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Overlapping or duplicate slot"}
                }
            }
        },
        "/api/v1/schedule/slots/{id}": {
            "put": {
                "tags": ["Schedule"],
                "summary": "Update a time slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Slot not found"}
                }
            },
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete a time slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/schedule/day-types": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Weekday to day-type assignments",
                "responses": {
                    "200": {"description": "Day type map"}
                }
            },
            "put": {
                "tags": ["Schedule"],
                "summary": "Assign a day type to a weekday",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetDayTypeRequest"}}
                ],
                "responses": {
                    "204": {"description": "Stored"}
                }
            }
        },
        "/api/v1/schedule/subject-labels": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Subject labels for a weekday",
                "parameters": [
                    {"name": "weekday", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Label list"}
                }
            },
            "put": {
                "tags": ["Schedule"],
                "summary": "Assign a subject label to a weekday slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetSubjectLabelRequest"}}
                ],
                "responses": {
                    "204": {"description": "Stored"}
                }
            }
        },
        "/api/v1/schedule/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Export the effective schedule for a date",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "date", "in": "query", "required": false, "type": "string"},
                    {"name": "format", "in": "query", "required": false, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "400": {"description": "Unknown format"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ToggleRequest": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"}
            }
        },
        "SpecialRequest": {
            "type": "object",
            "required": ["submode"],
            "properties": {
                "submode": {"type": "string", "enum": ["MARQUEE", "EXCLUSIVE"]},
                "payload": {"type": "object"}
            }
        },
        "ClockOffsetRequest": {
            "type": "object",
            "required": ["offset"],
            "properties": {
                "offset": {"type": "string"}
            }
        },
        "SaveSlotRequest": {
            "type": "object",
            "required": ["id", "name", "start", "end", "kind"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "kind": {"type": "string", "enum": ["CLASS", "BREAK"]}
            }
        },
        "SetDayTypeRequest": {
            "type": "object",
            "required": ["day_type"],
            "properties": {
                "weekday": {"type": "integer"},
                "day_type": {"type": "string", "enum": ["FULL", "HALF"]}
            }
        },
        "SetSubjectLabelRequest": {
            "type": "object",
            "required": ["slot_id", "label"],
            "properties": {
                "weekday": {"type": "integer"},
                "slot_id": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "StatusSnapshot": {
            "type": "object",
            "properties": {
                "at": {"type": "string", "format": "date-time"},
                "mode": {"type": "string", "enum": ["LOADING", "SPECIAL", "ECO", "CLASS", "BREAK", "PRE_BELL", "OFF_HOURS"]},
                "current_slot": {"type": "object"},
                "next_slot": {"type": "object"},
                "seconds_remaining": {"type": "integer"},
                "total_seconds": {"type": "integer"},
                "progress_percent": {"type": "number"},
                "special": {"type": "object"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
