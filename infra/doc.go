// Package infra contains the technical adapters around the matching core:
// the MQTT request feed and allocation notifier, metrics exporters and the
// zerolog logger. These packages depend only on the interfaces defined in
// the core packages.
package infra
