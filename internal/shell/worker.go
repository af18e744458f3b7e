package shell

import (
	"context"
	"time"

	"github.com/google/uuid"

	"unifimac/internal/controller"
	"unifimac/pkg/logging"
)

// Controller is the part of *controller.Client the worker uses.
type Controller interface {
	BaseURL() string
	Login(ctx context.Context, username, password string) error
	ListSites(ctx context.Context) ([]controller.Site, error)
	ListWirelessProfiles(ctx context.Context, siteCode string) ([]controller.WirelessProfile, error)
	ListKnownClients(ctx context.Context, siteCode string) (map[string]string, error)
}

// Dialer creates an unauthenticated Controller for baseURL.
type Dialer func(baseURL string, verifyTLS bool, timeout time.Duration) (Controller, error)

// DialController is the default Dialer.
func DialController(baseURL string, verifyTLS bool, timeout time.Duration) (Controller, error) {
	c, err := controller.New(baseURL, controller.WithVerifyTLS(verifyTLS), controller.WithTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// RequestKind identifies what a background request fetches.
type RequestKind int

const (
	// RequestLogin logs in and lists the sites.
	RequestLogin RequestKind = iota
	// RequestSiteData lists a site's WLANs and known clients.
	RequestSiteData
)

// String returns a human-readable name for the kind.
func (k RequestKind) String() string {
	switch k {
	case RequestLogin:
		return "login"
	case RequestSiteData:
		return "site data"
	default:
		return "unknown"
	}
}

type job struct {
	id   uuid.UUID
	kind RequestKind

	url      string
	user     string
	password string

	site controller.Site
}

// FetchResult is what the worker posts back to the loop for each job.
type FetchResult struct {
	ID      uuid.UUID
	Kind    RequestKind
	Payload interface{}
	Err     error
}

type loginPayload struct {
	BaseURL string
	User    string
	Sites   []controller.Site
}

type siteDataPayload struct {
	Site     controller.Site
	Profiles []controller.WirelessProfile
	Known    map[string]string
}

// worker owns the controller session. Only its goroutine touches client.
type worker struct {
	dial      Dialer
	verifyTLS bool
	timeout   time.Duration
	client    Controller
}

func newWorker(dial Dialer, verifyTLS bool, timeout time.Duration) *worker {
	if dial == nil {
		dial = DialController
	}
	return &worker{dial: dial, verifyTLS: verifyTLS, timeout: timeout}
}

// run executes jobs in arrival order until ctx is cancelled.
func (w *worker) run(ctx context.Context, jobs <-chan job, results chan<- FetchResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-jobs:
			res := w.execute(ctx, j)
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *worker) execute(ctx context.Context, j job) FetchResult {
	logging.Debug(subsystem, "Running %s request %s", j.kind, j.id)
	res := FetchResult{ID: j.id, Kind: j.kind}

	switch j.kind {
	case RequestLogin:
		res.Payload, res.Err = w.login(ctx, j)
	case RequestSiteData:
		res.Payload, res.Err = w.siteData(ctx, j.site)
	}
	return res
}

// login replaces the session. A failed login leaves no session behind.
func (w *worker) login(ctx context.Context, j job) (loginPayload, error) {
	w.client = nil

	client, err := w.dial(j.url, w.verifyTLS, w.timeout)
	if err != nil {
		return loginPayload{}, err
	}
	if err := client.Login(ctx, j.user, j.password); err != nil {
		return loginPayload{}, err
	}
	sites, err := client.ListSites(ctx)
	if err != nil {
		return loginPayload{}, err
	}

	w.client = client
	return loginPayload{BaseURL: client.BaseURL(), User: j.user, Sites: sites}, nil
}

func (w *worker) siteData(ctx context.Context, site controller.Site) (siteDataPayload, error) {
	if w.client == nil {
		return siteDataPayload{}, &controller.NotAuthenticatedError{}
	}

	profiles, err := w.client.ListWirelessProfiles(ctx, site.Code)
	if err != nil {
		return siteDataPayload{}, err
	}
	known, err := w.client.ListKnownClients(ctx, site.Code)
	if err != nil {
		return siteDataPayload{}, err
	}
	return siteDataPayload{Site: site, Profiles: profiles, Known: known}, nil
}
