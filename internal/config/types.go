package config

import "time"

// Config is one layer of settings. A zero field means "not set in this
// layer"; the layers are combined by Resolve.
//
// The password is never read from the config file, only from the
// environment, a flag, or the interactive prompt.
type Config struct {
	URL       string `yaml:"url,omitempty"`
	User      string `yaml:"user,omitempty"`
	Password  string `yaml:"-"`
	Site      string `yaml:"site,omitempty"`
	WLAN      string `yaml:"wlan,omitempty"`
	Format    string `yaml:"format,omitempty"`
	VerifySSL *bool  `yaml:"verify-ssl,omitempty"`
	Timeout   int    `yaml:"timeout,omitempty"` // seconds
}

// Settings is the fully resolved configuration used by the commands.
type Settings struct {
	URL       string
	User      string
	Password  string
	Site      string
	WLAN      string
	Format    string
	VerifySSL bool
	Timeout   int
}

// TimeoutDuration returns Timeout as a duration.
func (s Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// Override returns c with every field that is set in o replaced by o's value.
func (c Config) Override(o Config) Config {
	if o.URL != "" {
		c.URL = o.URL
	}
	if o.User != "" {
		c.User = o.User
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	if o.Site != "" {
		c.Site = o.Site
	}
	if o.WLAN != "" {
		c.WLAN = o.WLAN
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.VerifySSL != nil {
		v := *o.VerifySSL
		c.VerifySSL = &v
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	return c
}
