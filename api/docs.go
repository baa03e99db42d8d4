// Package api holds the swagger documentation of the backend.
//
// docTemplate, swagger.json and swagger.yaml are regenerated with
// swag init -g main.go -o api whenever the annotations of the handlers change.
package api

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
        "/": {
            "get": {
                "description": "Entrypoint for the API, listing all endpoints",
                "tags": [
                    "General"
                ],
                "summary": "API root",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/router.RootResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "Get health",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1": {
            "get": {
                "description": "Returns general information about the v1 API",
                "tags": [
                    "v1"
                ],
                "summary": "v1 API",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/router.V1Response"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "v1"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "description": "Returns a token for the user with the given credentials",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Authentication"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "login",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.Login"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Authentication"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/auth/registration": {
            "post": {
                "description": "Registers a new user and returns a token for them",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Authentication"
                ],
                "summary": "Register",
                "parameters": [
                    {
                        "description": "Registration",
                        "name": "registration",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.Registration"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.SessionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/budgets": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns all budgets the authenticated user created or participates in, newest first. Budgets marked as deleted are not listed.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "List budgets",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetListResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a new budget. The authenticated user becomes its creator.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Create budget",
                "parameters": [
                    {
                        "description": "Budget",
                        "name": "budget",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetEditable"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/budgets/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns a budget with its income, one page of its expenses and the computed totals. Only the creator and the participants can see a budget.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budget",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Page of expenses, starting at 1. Invalid pages return the first page.",
                        "name": "page",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetDetailResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes a budget with its income, expenses and categories. Only the creator can delete a budget.",
                "tags": [
                    "Budgets"
                ],
                "summary": "Delete budget",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Updates an existing budget. Only values to be updated need to be specified. Participants are added to the existing ones. Only the creator can update a budget.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Update budget",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Budget",
                        "name": "budget",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/budgets/{id}/categories": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the categories of the budget ordered by name, each with the IDs of its expenses",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "List categories",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a category for the budget. All listed expenses must belong to the same budget.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Create category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryEditable"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/budgets/{id}/expenses": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates an expense for the budget. The authenticated user becomes its creator. If a category is given, the expense is bound to it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Expenses"
                ],
                "summary": "Create expense",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Expense",
                        "name": "expense",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.ExpenseEditable"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.ExpenseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Expenses"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/budgets/{id}/income": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Sets the income of the budget. A budget has at most one income, use PATCH /v1/incomes/{id} to change it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Set income",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Income",
                        "name": "income",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.IncomeEditable"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/v1.IncomeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Incomes"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/budgets/{id}/participants": {
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Removes the listed users from the participants of the budget. Users that do not participate are ignored. Only the creator can remove participants.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Budgets"
                ],
                "summary": "Remove participants",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Participants to remove",
                        "name": "participants",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.ParticipantsEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.BudgetResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/categories/{id}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes a category. The expenses bound to it are not deleted.",
                "tags": [
                    "Categories"
                ],
                "summary": "Delete category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Updates the name of a category and binds additional expenses to it. Expenses that are bound already stay bound.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Update category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/categories/{id}/bindings": {
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Removes the binding between the category and the expense. Removing a binding that does not exist succeeds.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Remove expense from category",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Binding",
                        "name": "binding",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryBindingEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.CategoryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/expenses/{id}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes an expense. Only the creator of the expense or of its budget can delete it.",
                "tags": [
                    "Expenses"
                ],
                "summary": "Delete expense",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Expenses"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Updates an expense. Only values to be updated need to be specified. Only the creator of the expense or of its budget can update it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Expenses"
                ],
                "summary": "Update expense",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Expense",
                        "name": "expense",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.ExpenseEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.ExpenseResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/friends": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the friends of the authenticated user ordered by username",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Friends"
                ],
                "summary": "List friends",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.UserListResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Friends"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Adds users to the friends list of the authenticated user. Users on the list already are ignored. Friendship is not mutual.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Friends"
                ],
                "summary": "Add friends",
                "parameters": [
                    {
                        "description": "Friends",
                        "name": "friends",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.FriendsEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.UserListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/friends/remove": {
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Friends"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Removes users from the friends list of the authenticated user. Users not on the list are ignored.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Friends"
                ],
                "summary": "Remove friends",
                "parameters": [
                    {
                        "description": "Friends",
                        "name": "friends",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.FriendsEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.UserListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/incomes/{id}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes an income. Only the creator of the income or of its budget can delete it.",
                "tags": [
                    "Incomes"
                ],
                "summary": "Delete income",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Incomes"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Updates an income. Only values to be updated need to be specified. Only the creator of the income or of its budget can update it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Update income",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ignored, but needed: https://github.com/swaggo/swag/issues/1014",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Income",
                        "name": "income",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/v1.IncomeEditable"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.IncomeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            }
        },
        "/v1/users": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns users whose username contains the search term, ignoring case, or whose email address equals it. Ordered by username.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Search users",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search term",
                        "name": "search",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.UserListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Users"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/users/profile": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the profile of the authenticated user",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Get profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/v1.ProfileResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/v1.httpError"
                        }
                    }
                }
            },
            "options": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Users"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": [
                    "General"
                ],
                "summary": "API version",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/router.VersionResponse"
                        }
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        }
    },
    "definitions": {
        "router.RootLinks": {
            "type": "object",
            "properties": {
                "docs": {
                    "description": "Swagger API documentation",
                    "type": "string",
                    "example": "https://example.com/api/docs/index.html"
                },
                "healthz": {
                    "description": "Endpoint returning the health of the backend",
                    "type": "string",
                    "example": "https://example.com/api/healthz"
                },
                "metrics": {
                    "description": "Prometheus metrics",
                    "type": "string",
                    "example": "https://example.com/api/metrics"
                },
                "v1": {
                    "description": "List endpoint for all v1 endpoints",
                    "type": "string",
                    "example": "https://example.com/api/v1"
                },
                "version": {
                    "description": "Endpoint returning the version of the backend",
                    "type": "string",
                    "example": "https://example.com/api/version"
                }
            }
        },
        "router.RootResponse": {
            "type": "object",
            "properties": {
                "links": {
                    "$ref": "#/definitions/router.RootLinks"
                }
            }
        },
        "router.V1Links": {
            "type": "object",
            "properties": {
                "budgets": {
                    "description": "URL of budget list endpoint",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets"
                },
                "friends": {
                    "description": "URL of the friends list endpoint",
                    "type": "string",
                    "example": "https://example.com/api/v1/friends"
                },
                "login": {
                    "description": "URL of the login endpoint",
                    "type": "string",
                    "example": "https://example.com/api/v1/auth/login"
                },
                "profile": {
                    "description": "URL of the profile of the authenticated user",
                    "type": "string",
                    "example": "https://example.com/api/v1/users/profile"
                },
                "registration": {
                    "description": "URL of the registration endpoint",
                    "type": "string",
                    "example": "https://example.com/api/v1/auth/registration"
                },
                "users": {
                    "description": "URL of the user search endpoint",
                    "type": "string",
                    "example": "https://example.com/api/v1/users"
                }
            }
        },
        "router.V1Response": {
            "type": "object",
            "properties": {
                "links": {
                    "description": "Links for the v1 API",
                    "allOf": [
                        {
                            "$ref": "#/definitions/router.V1Links"
                        }
                    ]
                }
            }
        },
        "router.VersionObject": {
            "type": "object",
            "properties": {
                "version": {
                    "description": "the running version of the backend",
                    "type": "string",
                    "example": "1.1.0"
                }
            }
        },
        "router.VersionResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data object for the version endpoint",
                    "allOf": [
                        {
                            "$ref": "#/definitions/router.VersionObject"
                        }
                    ]
                }
            }
        },
        "v1.Budget": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string",
                    "example": "Everything we spend in Italy"
                },
                "createdAt": {
                    "description": "Time the resource was created",
                    "type": "string",
                    "example": "2022-04-02T19:28:44.491514Z"
                },
                "creator": {
                    "$ref": "#/definitions/v1.User"
                },
                "deleted": {
                    "type": "boolean",
                    "example": false
                },
                "id": {
                    "description": "UUID for the resource",
                    "type": "string",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "links": {
                    "$ref": "#/definitions/v1.BudgetLinks"
                },
                "name": {
                    "type": "string",
                    "example": "Holiday 2024"
                },
                "participants": {
                    "description": "Participants ordered by username",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.User"
                    }
                },
                "updatedAt": {
                    "description": "Last time the resource was updated",
                    "type": "string",
                    "example": "2022-04-17T20:14:01.048145Z"
                }
            }
        },
        "v1.BudgetDetail": {
            "type": "object",
            "properties": {
                "budgetLeft": {
                    "description": "Income minus the sum of all expenses",
                    "type": "string",
                    "example": "-110.18"
                },
                "content": {
                    "type": "string",
                    "example": "Everything we spend in Italy"
                },
                "createdAt": {
                    "description": "Time the resource was created",
                    "type": "string",
                    "example": "2022-04-02T19:28:44.491514Z"
                },
                "creator": {
                    "$ref": "#/definitions/v1.User"
                },
                "deleted": {
                    "type": "boolean",
                    "example": false
                },
                "expenses": {
                    "description": "One page of expenses, newest first",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.Expense"
                    }
                },
                "expensesSum": {
                    "description": "Sum of all expenses of the budget",
                    "type": "string",
                    "example": "110.18"
                },
                "id": {
                    "description": "UUID for the resource",
                    "type": "string",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "income": {
                    "description": "The income of the budget, null if none is set",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Income"
                        }
                    ]
                },
                "links": {
                    "$ref": "#/definitions/v1.BudgetLinks"
                },
                "name": {
                    "type": "string",
                    "example": "Holiday 2024"
                },
                "pagination": {
                    "description": "Pagination information for the expenses",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Pagination"
                        }
                    ]
                },
                "participants": {
                    "description": "Participants ordered by username",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.User"
                    }
                },
                "updatedAt": {
                    "description": "Last time the resource was updated",
                    "type": "string",
                    "example": "2022-04-17T20:14:01.048145Z"
                }
            }
        },
        "v1.BudgetDetailResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the budget",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.BudgetDetail"
                        }
                    ]
                }
            }
        },
        "v1.BudgetEditable": {
            "type": "object",
            "properties": {
                "content": {
                    "description": "Description of the budget",
                    "type": "string",
                    "example": "Everything we spend in Italy"
                },
                "deleted": {
                    "description": "Marks the budget as deleted. Ignored on creation",
                    "type": "boolean",
                    "example": false
                },
                "name": {
                    "description": "Name of the budget, at most 30 characters",
                    "type": "string",
                    "example": "Holiday 2024"
                },
                "participants": {
                    "description": "IDs of users to add as participants",
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"
                    ]
                }
            }
        },
        "v1.BudgetLinks": {
            "type": "object",
            "properties": {
                "categories": {
                    "description": "Categories of this budget",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/categories"
                },
                "expenses": {
                    "description": "Create expenses for this budget",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/expenses"
                },
                "income": {
                    "description": "Set the income of this budget",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/income"
                },
                "self": {
                    "description": "The budget itself",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                }
            }
        },
        "v1.BudgetListItem": {
            "type": "object",
            "properties": {
                "creator": {
                    "$ref": "#/definitions/v1.User"
                },
                "id": {
                    "type": "string",
                    "example": "550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                },
                "links": {
                    "$ref": "#/definitions/v1.BudgetLinks"
                },
                "name": {
                    "type": "string",
                    "example": "Holiday 2024"
                }
            }
        },
        "v1.BudgetListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "List of budgets",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.BudgetListItem"
                    }
                }
            }
        },
        "v1.BudgetResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the budget",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Budget"
                        }
                    ]
                }
            }
        },
        "v1.Category": {
            "type": "object",
            "properties": {
                "budgetId": {
                    "type": "string",
                    "example": "550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                },
                "createdAt": {
                    "description": "Time the resource was created",
                    "type": "string",
                    "example": "2022-04-02T19:28:44.491514Z"
                },
                "expenses": {
                    "description": "IDs of the expenses bound to the category",
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "id": {
                    "description": "UUID for the resource",
                    "type": "string",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "links": {
                    "$ref": "#/definitions/v1.CategoryLinks"
                },
                "name": {
                    "type": "string",
                    "example": "Food"
                },
                "updatedAt": {
                    "description": "Last time the resource was updated",
                    "type": "string",
                    "example": "2022-04-17T20:14:01.048145Z"
                }
            }
        },
        "v1.CategoryBindingEditable": {
            "type": "object",
            "properties": {
                "expense": {
                    "description": "ID of the expense",
                    "type": "string",
                    "example": "0a9ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"
                }
            }
        },
        "v1.CategoryEditable": {
            "type": "object",
            "properties": {
                "expenses": {
                    "description": "IDs of expenses of the same budget to bind to the category",
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "0a9ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"
                    ]
                },
                "name": {
                    "description": "Name of the category, at most 30 characters",
                    "type": "string",
                    "example": "Food"
                }
            }
        },
        "v1.CategoryLinks": {
            "type": "object",
            "properties": {
                "bindings": {
                    "description": "Remove expenses from the category",
                    "type": "string",
                    "example": "https://example.com/api/v1/categories/9b0ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d/bindings"
                },
                "budget": {
                    "description": "The budget the category belongs to",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                },
                "self": {
                    "description": "The category itself",
                    "type": "string",
                    "example": "https://example.com/api/v1/categories/9b0ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"
                }
            }
        },
        "v1.CategoryListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "List of categories",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.Category"
                    }
                }
            }
        },
        "v1.CategoryResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the category",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Category"
                        }
                    ]
                }
            }
        },
        "v1.Expense": {
            "type": "object",
            "properties": {
                "budgetId": {
                    "type": "string",
                    "example": "550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                },
                "createdAt": {
                    "description": "Time the resource was created",
                    "type": "string",
                    "example": "2022-04-02T19:28:44.491514Z"
                },
                "creator": {
                    "$ref": "#/definitions/v1.User"
                },
                "id": {
                    "description": "UUID for the resource",
                    "type": "string",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "links": {
                    "$ref": "#/definitions/v1.ExpenseLinks"
                },
                "name": {
                    "type": "string",
                    "example": "Groceries"
                },
                "updatedAt": {
                    "description": "Last time the resource was updated",
                    "type": "string",
                    "example": "2022-04-17T20:14:01.048145Z"
                },
                "value": {
                    "type": "string",
                    "example": "62.90"
                }
            }
        },
        "v1.ExpenseEditable": {
            "type": "object",
            "properties": {
                "category": {
                    "description": "Category of the same budget to bind the expense to. Only used on creation",
                    "type": "string",
                    "example": "9b0ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"
                },
                "name": {
                    "description": "Name of the expense, at most 30 characters",
                    "type": "string",
                    "example": "Groceries"
                },
                "value": {
                    "description": "Value of the expense, at most 8 digits with 2 decimal places",
                    "type": "string",
                    "example": "62.90"
                }
            }
        },
        "v1.ExpenseLinks": {
            "type": "object",
            "properties": {
                "budget": {
                    "description": "The budget the expense belongs to",
                    "type": "string",
                    "example": "https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                },
                "self": {
                    "description": "The expense itself",
                    "type": "string",
                    "example": "https://example.com/api/v1/expenses/0a9ed1c4-1e3a-4b0b-9a9c-5f4e0a2b8f6d"
                }
            }
        },
        "v1.ExpenseResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the expense",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Expense"
                        }
                    ]
                }
            }
        },
        "v1.FriendsEditable": {
            "type": "object",
            "properties": {
                "friendsList": {
                    "description": "IDs of users",
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"
                    ]
                }
            }
        },
        "v1.Income": {
            "type": "object",
            "properties": {
                "budgetId": {
                    "type": "string",
                    "example": "550dc009-cea6-4c12-b2a5-03446eb7b7cf"
                },
                "createdAt": {
                    "description": "Time the resource was created",
                    "type": "string",
                    "example": "2022-04-02T19:28:44.491514Z"
                },
                "creator": {
                    "$ref": "#/definitions/v1.User"
                },
                "id": {
                    "description": "UUID for the resource",
                    "type": "string",
                    "example": "65392deb-5e92-4268-b114-297faad6cdce"
                },
                "links": {
                    "$ref": "#/definitions/v1.IncomeLinks"
                },
                "name": {
                    "type": "string",
                    "example": "Salary"
                },
                "updatedAt": {
                    "description": "Last time the resource was updated",
                    "type": "string",
                    "example": "2022-04-17T20:14:01.048145Z"
                },
                "value": {
                    "type": "string",
                    "example": "2500.00"
                }
            }
        },
        "v1.IncomeEditable": {
            "type": "object",
            "properties": {
                "name": {
                    "description": "Name of the income, at most 30 characters",
                    "type": "string",
                    "example": "Salary"
                },
                "value": {
                    "description": "Value of the income, at most 8 digits with 2 decimal places",
                    "type": "string",
                    "example": "2500.00"
                }
            }
        },
        "v1.IncomeLinks": {
            "type": "object",
            "properties": {
                "self": {
                    "description": "The income itself",
                    "type": "string",
                    "example": "https://example.com/api/v1/incomes/3f1c1e2a-64a5-4d1b-8c0e-7b4a8a0e9f10"
                }
            }
        },
        "v1.IncomeResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the income",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Income"
                        }
                    ]
                }
            }
        },
        "v1.Login": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "jane@example.com"
                },
                "password": {
                    "type": "string",
                    "example": "correct horse battery staple"
                }
            }
        },
        "v1.Pagination": {
            "type": "object",
            "properties": {
                "count": {
                    "description": "Total number of items",
                    "type": "integer",
                    "example": 47
                },
                "page": {
                    "description": "The current page, starting at 1",
                    "type": "integer",
                    "example": 1
                },
                "pageSize": {
                    "description": "Maximum number of items per page",
                    "type": "integer",
                    "example": 20
                },
                "pages": {
                    "description": "Number of pages, at least 1",
                    "type": "integer",
                    "example": 3
                }
            }
        },
        "v1.ParticipantsEditable": {
            "type": "object",
            "properties": {
                "participants": {
                    "description": "IDs of the users to remove",
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"
                    ]
                }
            }
        },
        "v1.Profile": {
            "type": "object",
            "properties": {
                "avatar": {
                    "description": "The avatar of the user or the default avatar",
                    "type": "string",
                    "example": "/static/avatars/default.png"
                },
                "email": {
                    "type": "string",
                    "example": "jane@example.com"
                },
                "id": {
                    "type": "string",
                    "example": "7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"
                },
                "registeredAt": {
                    "type": "string",
                    "example": "2022-04-02T19:28:44.491514Z"
                },
                "username": {
                    "type": "string",
                    "example": "jane"
                }
            }
        },
        "v1.ProfileResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the user",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Profile"
                        }
                    ]
                }
            }
        },
        "v1.Registration": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "jane@example.com"
                },
                "password": {
                    "description": "At least 8 characters",
                    "type": "string",
                    "example": "correct horse battery staple"
                },
                "username": {
                    "type": "string",
                    "example": "jane"
                }
            }
        },
        "v1.Session": {
            "type": "object",
            "properties": {
                "token": {
                    "description": "Bearer token for the Authorization header",
                    "type": "string",
                    "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
                },
                "user": {
                    "$ref": "#/definitions/v1.Profile"
                }
            }
        },
        "v1.SessionResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "Data for the session",
                    "allOf": [
                        {
                            "$ref": "#/definitions/v1.Session"
                        }
                    ]
                }
            }
        },
        "v1.User": {
            "type": "object",
            "properties": {
                "avatar": {
                    "description": "The avatar of the user or the default avatar",
                    "type": "string",
                    "example": "/static/avatars/default.png"
                },
                "id": {
                    "type": "string",
                    "example": "7c1ab1fd-7e24-4e8a-8bd6-9e39b40ba34a"
                },
                "username": {
                    "type": "string",
                    "example": "jane"
                }
            }
        },
        "v1.UserListResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "description": "List of users",
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/v1.User"
                    }
                }
            }
        },
        "v1.httpError": {
            "type": "object",
            "properties": {
                "code": {
                    "description": "Machine readable error code",
                    "type": "string",
                    "example": "required"
                },
                "error": {
                    "description": "Human readable description of the error",
                    "type": "string",
                    "example": "this field is required"
                },
                "field": {
                    "description": "The field the error refers to, for validation errors only",
                    "type": "string",
                    "example": "name"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Home Budget",
	Description:      "The backend for Home Budget. Create budgets, share them with your household and keep track of income and expenses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
