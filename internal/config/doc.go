// Package config resolves the settings used by the unifimac commands.
//
// Settings come from four layers, highest precedence first:
//
//  1. command-line flags
//  2. UNIFI_* environment variables
//  3. the YAML file ~/.config/unifimac/config.yaml (or --config PATH)
//  4. built-in defaults (timeout 10s, format txt, no certificate verification)
//
// Example config.yaml:
//
//	url: https://10.0.0.1:8443
//	user: admin
//	site: Main Office
//	wlan: Corp WiFi
//	format: csv
//	verify-ssl: false
//	timeout: 15
//
// The password is deliberately absent from the file format.
package config
