package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"unifimac/internal/labeler"
)

// envelope is the wrapper the controller puts around every response.
type envelope struct {
	Meta *struct {
		RC  string `json:"rc"`
		Msg string `json:"msg"`
	} `json:"meta"`
	Data *json.RawMessage `json:"data"`
}

type siteRecord struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

type wlanRecord struct {
	Name             string   `json:"name"`
	MACFilterList    []string `json:"mac_filter_list"`
	MACFilterPolicy  string   `json:"mac_filter_policy"`
	MACFilterEnabled bool     `json:"mac_filter_enabled"`
}

// decodeCollection validates the envelope and returns the raw records of its
// data array.
func decodeCollection(body []byte) ([]json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("body is not a JSON object: %w", err)
	}
	if env.Data == nil {
		return nil, errors.New("response has no data collection")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(*env.Data, &records); err != nil {
		return nil, fmt.Errorf("data is not an array: %w", err)
	}
	return records, nil
}

// envelopeMessage extracts meta.msg from an error body, if present.
func envelopeMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Meta == nil {
		return ""
	}
	return env.Meta.Msg
}

func decodeSites(records []json.RawMessage) ([]Site, error) {
	sites := make([]Site, 0, len(records))
	for i, raw := range records {
		var rec siteRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("site record %d: %w", i, err)
		}
		desc := rec.Desc
		if desc == "" {
			desc = rec.Name
		}
		sites = append(sites, Site{Code: rec.Name, Description: desc})
	}
	return sites, nil
}

func decodeWirelessProfiles(records []json.RawMessage) ([]WirelessProfile, error) {
	profiles := make([]WirelessProfile, 0, len(records))
	for i, raw := range records {
		var rec wlanRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("wlanconf record %d: %w", i, err)
		}
		macs := rec.MACFilterList
		if macs == nil {
			macs = []string{}
		}
		profiles = append(profiles, WirelessProfile{
			Name:             rec.Name,
			MACFilterList:    macs,
			MACFilterPolicy:  rec.MACFilterPolicy,
			MACFilterEnabled: rec.MACFilterEnabled,
		})
	}
	return profiles, nil
}

// decodeKnownClients builds the MAC to display-name mapping. Records without
// a MAC or without any usable name field contribute nothing.
func decodeKnownClients(records []json.RawMessage) (map[string]string, error) {
	known := make(map[string]string, len(records))
	for i, raw := range records {
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("alluser record %d: %w", i, err)
		}

		mac := labeler.NormalizeMAC(stringField(rec, "mac"))
		if mac == "" {
			continue
		}
		if name := pickName(rec); name != "" {
			known[mac] = name
		}
	}
	return known, nil
}

// pickName returns the first non-blank string among nameFields, trimmed.
func pickName(rec map[string]json.RawMessage) string {
	for _, key := range nameFields {
		if value := strings.TrimSpace(stringField(rec, key)); value != "" {
			return value
		}
	}
	return ""
}

// stringField returns rec[key] if it is a JSON string. Missing, null and
// non-string values yield "".
func stringField(rec map[string]json.RawMessage, key string) string {
	raw, ok := rec[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
