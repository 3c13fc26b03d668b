// Package api handles incoming HTTP requests, request validation and
// response formatting for the task endpoints. Handlers translate HTTP
// concerns into TaskService calls and map service errors onto status codes
// with client-safe messages.
package api
