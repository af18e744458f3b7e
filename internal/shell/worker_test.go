package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifimac/internal/controller"
)

func TestRequestKindString(t *testing.T) {
	assert.Equal(t, "login", RequestLogin.String())
	assert.Equal(t, "site data", RequestSiteData.String())
	assert.Equal(t, "unknown", RequestKind(42).String())
}

func TestWorkerSiteDataBeforeLogin(t *testing.T) {
	w := newWorker(newFakeController().dial, false, time.Second)
	res := w.execute(context.Background(), job{id: uuid.New(), kind: RequestSiteData, site: controller.Site{Code: "default"}})

	var notAuth *controller.NotAuthenticatedError
	assert.ErrorAs(t, res.Err, &notAuth)
}

func TestWorkerLogin(t *testing.T) {
	fake := newFakeController()
	w := newWorker(fake.dial, false, time.Second)
	id := uuid.New()

	res := w.execute(context.Background(), job{id: id, kind: RequestLogin, url: "https://unifi.local", user: "admin", password: "pw"})
	require.NoError(t, res.Err)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, RequestLogin, res.Kind)

	payload, ok := res.Payload.(loginPayload)
	require.True(t, ok)
	assert.Equal(t, "https://unifi.local", payload.BaseURL)
	assert.Equal(t, "admin", payload.User)
	assert.Len(t, payload.Sites, 2)

	res = w.execute(context.Background(), job{id: uuid.New(), kind: RequestSiteData, site: controller.Site{Code: "wh", Description: "Warehouse"}})
	<-fake.started
	require.NoError(t, res.Err)
	data := res.Payload.(siteDataPayload)
	assert.Equal(t, "Warehouse", data.Site.Description)
	assert.Len(t, data.Profiles, 2)
	assert.Equal(t, "Scanner 1", data.Known["DE:AD:BE:EF:00:01"])
}

func TestWorkerFailedLoginDropsSession(t *testing.T) {
	fake := newFakeController()
	w := newWorker(fake.dial, false, time.Second)

	res := w.execute(context.Background(), job{id: uuid.New(), kind: RequestLogin, url: "https://unifi.local", user: "admin", password: "pw"})
	require.NoError(t, res.Err)

	fake.loginErr = &controller.AuthenticationError{Endpoint: "https://unifi.local/api/login", StatusCode: 401, Reason: errors.New("Unauthorized")}
	res = w.execute(context.Background(), job{id: uuid.New(), kind: RequestLogin, url: "https://unifi.local", user: "admin", password: "bad"})
	require.Error(t, res.Err)

	res = w.execute(context.Background(), job{id: uuid.New(), kind: RequestSiteData, site: controller.Site{Code: "default"}})
	var notAuth *controller.NotAuthenticatedError
	assert.ErrorAs(t, res.Err, &notAuth)
}

func TestWorkerDialError(t *testing.T) {
	dialErr := errors.New("invalid controller URL")
	w := newWorker(func(string, bool, time.Duration) (Controller, error) { return nil, dialErr }, false, time.Second)

	res := w.execute(context.Background(), job{id: uuid.New(), kind: RequestLogin, url: "nope"})
	assert.ErrorIs(t, res.Err, dialErr)
}

func TestDialController(t *testing.T) {
	c, err := DialController("https://10.0.0.1:8443/", true, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "https://10.0.0.1:8443", c.BaseURL())

	c, err = DialController("ftp://10.0.0.1", false, time.Second)
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	w := newWorker(newFakeController().dial, false, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	jobs := make(chan job)
	results := make(chan FetchResult)
	done := make(chan struct{})

	go func() {
		w.run(ctx, jobs, results)
		close(done)
	}()

	jobs <- job{id: uuid.New(), kind: RequestLogin, url: "https://unifi.local", user: "admin"}
	res := <-results
	assert.NoError(t, res.Err)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
