// Package hexapi is the HTTP client for the hosted product-catalog API.
//
// # Overview
//
// All persistence, authentication and business logic live in the external
// API; this package only speaks its REST contract:
//
//	POST   {base}/admin/signin                      sign in, returns token + expiry
//	POST   {base}/api/user/check                    verify the current session
//	GET    {base}/api/{path}/admin/products?page=N  one page of products
//	POST   {base}/api/{path}/admin/product          create a product
//	PUT    {base}/api/{path}/admin/product/{id}     update a product
//	DELETE {base}/api/{path}/admin/product/{id}     delete a product
//	POST   {base}/api/{path}/admin/upload           multipart image upload
//
// # Authorization
//
// The client carries a single mutable authorization slot. SetAuthorization
// installs the session token on every subsequent request (the API takes the
// raw token in the Authorization header, no "Bearer" prefix);
// ClearAuthorization removes it. Last writer wins.
//
// # Errors
//
// Non-2xx responses decode into *APIError, which preserves the HTTP status,
// the server message (string or array form) and an optional error code.
// IsAuthFailure and IsCredentialFailure classify errors for the controller
// layer.
package hexapi
