// Package controller is a minimal client for the UniFi Network controller
// REST API.
//
// A Client logs in once with a username and password, keeps the session
// cookie, and then retrieves three read-only collections: the sites visible
// to the user, the wireless profiles of a site, and the site's known-client
// roster. Every response body is checked against the envelope the controller
// uses ({"meta": {...}, "data": [...]}); bodies of the wrong shape yield a
// ProtocolError instead of partially filled values.
//
// Basic usage:
//
//	c, err := controller.New("https://10.0.0.1:8443", controller.WithTimeout(10*time.Second))
//	if err != nil {
//		return err
//	}
//	if err := c.Login(ctx, user, password); err != nil {
//		return err
//	}
//	site, err := c.ResolveSite(ctx, "Main Office")
//	profile, known, err := c.FetchFilterDetails(ctx, site.Code, "Corp WiFi")
//
// Requests are never retried. Certificate verification is off unless
// WithVerifyTLS(true) is given, since most controllers run with a
// self-signed certificate.
package controller
