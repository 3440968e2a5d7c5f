// Package utils provides terminal helpers for the cellar CLI, most
// notably no-echo passphrase prompting with optional confirmation.
package utils
