// Package cli implements the cobra command tree for the bfsi-assistant
// binary.
//
// Commands depend on driving ports only. Services are injected by main
// through the Set functions in root.go; the heavy answering stack is
// wired lazily so that settings and version work even when a provider
// is misconfigured.
package cli
