package config

const (
	// DefaultTimeout is the per-request timeout in seconds.
	DefaultTimeout = 10

	// DefaultFormat is the export format used when none is given.
	DefaultFormat = "txt"
)

// Defaults returns the lowest-precedence layer.
func Defaults() Config {
	verify := false
	return Config{
		Format:    DefaultFormat,
		VerifySSL: &verify,
		Timeout:   DefaultTimeout,
	}
}

// Resolve stacks layers from lowest to highest precedence on top of
// Defaults and returns the result. Callers pass file, env and flag layers in
// that order.
func Resolve(layers ...Config) Settings {
	merged := Defaults()
	for _, layer := range layers {
		merged = merged.Override(layer)
	}

	s := Settings{
		URL:      merged.URL,
		User:     merged.User,
		Password: merged.Password,
		Site:     merged.Site,
		WLAN:     merged.WLAN,
		Format:   merged.Format,
		Timeout:  merged.Timeout,
	}
	if merged.VerifySSL != nil {
		s.VerifySSL = *merged.VerifySSL
	}
	return s
}
