// Package connectors holds the upstream API clients that implement the
// driven ports. Each subpackage talks to one remote service.
package connectors
