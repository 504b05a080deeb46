// Package app provides application initialization and lifecycle management.
//
// The App type wires the configuration into the logger, the router and
// its middleware stack (request ids, access logging, panic recovery, CORS),
// then runs the HTTP server until the context is cancelled or a shutdown
// signal arrives.
package app
