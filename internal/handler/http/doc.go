// Package http implements the REST API of amour-lingua.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as session authentication, request tracing, access logging,
// response compression and message localization are handled in this package
// before requests are delegated to the service layer. Every failure is
// answered with a localized {"message": "..."} body.
package http
