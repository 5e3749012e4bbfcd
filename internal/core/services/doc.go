// Package services implements the driving port interfaces.
// Services validate input, apply defaults and call the driven ports.
package services
