// Package docs 由 swag init 生成的 API 文档（注释来源 internal/api/handler）
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
		"/api/v1/carts": {
			"get": {
				"produces": ["application/json"],
				"tags": ["购物车"],
				"summary": "查询购物车条目与激活总里程",
				"parameters": [
					{"type": "integer", "description": "用户ID", "name": "userId", "in": "query", "required": true}
				],
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
					"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
					"500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			},
			"post": {
				"produces": ["application/json"],
				"tags": ["购物车"],
				"summary": "加入购物车（本人帖子、重复、已购买均拒绝）",
				"parameters": [
					{"type": "integer", "description": "用户ID", "name": "userId", "in": "query", "required": true},
					{"type": "integer", "description": "帖子ID", "name": "postId", "in": "query", "required": true}
				],
				"responses": {
					"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
					"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
					"404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
					"500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			},
			"delete": {
				"produces": ["application/json"],
				"tags": ["购物车"],
				"summary": "清空购物车（空购物车也返回成功）",
				"parameters": [
					{"type": "integer", "description": "用户ID", "name": "userId", "in": "query", "required": true}
				],
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
					"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
					"500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			}
		},
		"/api/v1/carts/active": {
			"delete": {
				"produces": ["application/json"],
				"tags": ["购物车"],
				"summary": "删除购物车中所有激活条目",
				"parameters": [
					{"type": "integer", "description": "用户ID", "name": "userId", "in": "query", "required": true}
				],
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
					"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
					"404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
					"500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			}
		},
		"/api/v1/carts/items/{itemId}/active": {
			"patch": {
				"produces": ["application/json"],
				"tags": ["购物车"],
				"summary": "切换购物车条目激活状态并返回最新总里程",
				"parameters": [
					{"type": "integer", "description": "购物车条目ID", "name": "itemId", "in": "path", "required": true},
					{"type": "integer", "description": "用户ID", "name": "userId", "in": "query", "required": true}
				],
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
					"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
					"403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
					"404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}},
					"500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			}
		},
		"/api/v1/carts/total": {
			"get": {
				"produces": ["application/json"],
				"tags": ["购物车"],
				"summary": "查询购物车激活条目总里程（带缓存）",
				"parameters": [
					{"type": "integer", "description": "用户ID", "name": "userId", "in": "query", "required": true}
				],
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
					"400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
					"500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			}
		},
		"/health": {
			"get": {
				"produces": ["application/json"],
				"tags": ["系统"],
				"summary": "健康检查（数据库 / Redis）",
				"responses": {
					"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
					"503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
				}
			}
		}
	},
	"definitions": {
		"response.Response": {
			"type": "object",
			"properties": {
				"code": {"type": "integer"},
				"data": {},
				"message": {"type": "string"}
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
	Title:            "Mileage Cart API",
	Description:      "社区二手市场购物车服务：里程累计、条目激活切换。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
