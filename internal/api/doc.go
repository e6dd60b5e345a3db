// Package api implements the HTTP surface of the task service: handlers,
// request/response models, and error-to-status mapping. Handlers delegate
// all business logic to the service layer and never touch the store
// directly.
package api
