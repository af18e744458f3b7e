package controller

// Site is a UniFi site. Code is the controller's internal identifier used in
// API paths; Description is the human label shown to users.
type Site struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// WirelessProfile is a WLAN configuration and its MAC filter list.
type WirelessProfile struct {
	Name             string   `json:"name" yaml:"name"`
	MACFilterList    []string `json:"macFilterList" yaml:"macFilterList"`
	MACFilterPolicy  string   `json:"macFilterPolicy,omitempty" yaml:"macFilterPolicy,omitempty"`
	MACFilterEnabled bool     `json:"macFilterEnabled" yaml:"macFilterEnabled"`
}

// Known-client record fields tried, in order, when picking a display name.
var nameFields = []string{"name", "hostname", "usergroup_name", "oui"}
