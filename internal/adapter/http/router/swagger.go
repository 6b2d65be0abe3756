package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Account Management API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Banking Account Management API",
    "version": "1.0.0"
  },
  "components": {
    "parameters": {
      "CustomerID": {
        "name": "X-Customer-ID",
        "in": "header",
        "required": true,
        "schema": { "type": "string" }
      },
      "RequestID": {
        "name": "X-Request-ID",
        "in": "header",
        "required": false,
        "schema": { "type": "string" }
      }
    },
    "schemas": {
      "MonetaryAmount": {
        "type": "object",
        "properties": {
          "amount": { "type": "string", "example": "1000.00" },
          "currency": { "type": "string", "example": "USD" }
        }
      },
      "CustomerDetails": {
        "type": "object",
        "required": ["firstName", "lastName"],
        "properties": {
          "firstName": { "type": "string", "maxLength": 50 },
          "lastName": { "type": "string", "maxLength": 50 },
          "email": { "type": "string" },
          "phoneNumber": { "type": "string" },
          "address": { "type": "string" }
        }
      },
      "CreateAccountRequest": {
        "type": "object",
        "required": ["accountType", "currency", "initialDeposit", "customerDetails"],
        "properties": {
          "accountType": {
            "type": "string",
            "enum": ["CHECKING", "SAVINGS", "MONEY_MARKET", "CERTIFICATE_DEPOSIT", "LOAN", "CREDIT_CARD", "INVESTMENT"]
          },
          "currency": { "type": "string", "pattern": "^[A-Z]{3}$" },
          "initialDeposit": { "type": "string", "example": "1000.00" },
          "customerDetails": { "$ref": "#/components/schemas/CustomerDetails" },
          "accountNickname": { "type": "string", "maxLength": 50 },
          "metadata": { "type": "object", "additionalProperties": { "type": "string" } }
        }
      },
      "UpdateAccountRequest": {
        "type": "object",
        "properties": {
          "accountNickname": { "type": "string", "maxLength": 50 },
          "metadata": { "type": "object", "additionalProperties": { "type": "string" } }
        }
      },
      "AccountResponse": {
        "type": "object",
        "properties": {
          "accountId": { "type": "string" },
          "accountNumber": { "type": "string", "example": "****6789" },
          "accountType": { "type": "string" },
          "status": { "type": "string" },
          "currency": { "type": "string" },
          "balance": { "$ref": "#/components/schemas/MonetaryAmount" },
          "availableBalance": { "$ref": "#/components/schemas/MonetaryAmount" },
          "accountNickname": { "type": "string" },
          "customerId": { "type": "string" },
          "branchId": { "type": "string" },
          "createdAt": { "type": "string", "format": "date-time" },
          "updatedAt": { "type": "string", "format": "date-time" },
          "lastActivityAt": { "type": "string", "format": "date-time" },
          "metadata": { "type": "object", "additionalProperties": { "type": "string" } }
        }
      },
      "AccountListResponse": {
        "type": "object",
        "properties": {
          "accounts": { "type": "array", "items": { "$ref": "#/components/schemas/AccountResponse" } },
          "totalElements": { "type": "integer" },
          "totalPages": { "type": "integer" },
          "currentPage": { "type": "integer" },
          "size": { "type": "integer" },
          "hasNext": { "type": "boolean" },
          "hasPrevious": { "type": "boolean" }
        }
      },
      "ErrorBody": {
        "type": "object",
        "properties": {
          "error": { "type": "string" },
          "message": { "type": "string" },
          "accountId": { "type": "string" },
          "violations": { "type": "array", "items": { "type": "string" } }
        }
      }
    }
  },
  "paths": {
    "/accounts/health": {
      "get": {
        "summary": "Health check",
        "responses": {
          "200": { "description": "API is healthy" }
        }
      }
    },
    "/accounts": {
      "get": {
        "summary": "List accounts for the requesting customer",
        "parameters": [
          { "$ref": "#/components/parameters/CustomerID" },
          { "$ref": "#/components/parameters/RequestID" },
          { "name": "accountType", "in": "query", "schema": { "type": "string" } },
          { "name": "status", "in": "query", "schema": { "type": "string" } },
          { "name": "currency", "in": "query", "schema": { "type": "string" } },
          { "name": "page", "in": "query", "schema": { "type": "integer", "default": 0 } },
          { "name": "size", "in": "query", "schema": { "type": "integer", "default": 10 } },
          { "name": "sortBy", "in": "query", "schema": { "type": "string", "default": "createdAt" } },
          { "name": "sortDir", "in": "query", "schema": { "type": "string", "enum": ["asc", "desc"], "default": "desc" } }
        ],
        "responses": {
          "200": {
            "description": "One page of accounts",
            "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AccountListResponse" } } }
          },
          "400": { "description": "Invalid parameters", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ErrorBody" } } } }
        }
      },
      "post": {
        "summary": "Create account",
        "parameters": [
          { "$ref": "#/components/parameters/CustomerID" },
          { "$ref": "#/components/parameters/RequestID" }
        ],
        "requestBody": {
          "required": true,
          "content": { "application/json": { "schema": { "$ref": "#/components/schemas/CreateAccountRequest" } } }
        },
        "responses": {
          "201": { "description": "Account created", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AccountResponse" } } } },
          "400": { "description": "Validation failed", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ErrorBody" } } } }
        }
      }
    },
    "/accounts/{accountId}": {
      "get": {
        "summary": "Get account details",
        "parameters": [
          { "name": "accountId", "in": "path", "required": true, "schema": { "type": "string" } },
          { "$ref": "#/components/parameters/CustomerID" },
          { "$ref": "#/components/parameters/RequestID" }
        ],
        "responses": {
          "200": { "description": "Account details", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AccountResponse" } } } },
          "403": { "description": "Access denied" },
          "404": { "description": "Account not found" }
        }
      },
      "put": {
        "summary": "Update nickname or metadata",
        "parameters": [
          { "name": "accountId", "in": "path", "required": true, "schema": { "type": "string" } },
          { "$ref": "#/components/parameters/CustomerID" },
          { "$ref": "#/components/parameters/RequestID" }
        ],
        "requestBody": {
          "required": true,
          "content": { "application/json": { "schema": { "$ref": "#/components/schemas/UpdateAccountRequest" } } }
        },
        "responses": {
          "200": { "description": "Account updated", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/AccountResponse" } } } },
          "400": { "description": "Validation failed" },
          "403": { "description": "Access denied" },
          "404": { "description": "Account not found" }
        }
      },
      "delete": {
        "summary": "Close account",
        "parameters": [
          { "name": "accountId", "in": "path", "required": true, "schema": { "type": "string" } },
          { "name": "reason", "in": "query", "schema": { "type": "string", "default": "CUSTOMER_REQUEST" } },
          { "$ref": "#/components/parameters/CustomerID" },
          { "$ref": "#/components/parameters/RequestID" }
        ],
        "responses": {
          "204": { "description": "Account closed" },
          "403": { "description": "Access denied" },
          "404": { "description": "Account not found" },
          "409": { "description": "Account cannot be closed" }
        }
      }
    }
  }
}`
