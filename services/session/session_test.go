package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"workshopcart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	submitted bool
	checkErr  error
	sendErr   error
	checks    int
	sent      []models.SubmissionPayload
	sentCh    chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sentCh: make(chan struct{}, 8)}
}

func (f *fakeGateway) CheckSubmitted(ctx context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.submitted, f.checkErr
}

func (f *fakeGateway) SendEmail(ctx context.Context, p models.SubmissionPayload) (models.SendAck, error) {
	f.mu.Lock()
	f.sent = append(f.sent, p)
	err := f.sendErr
	f.mu.Unlock()
	f.sentCh <- struct{}{}
	return models.SendAck{StatusCode: 202}, err
}

func (f *fakeGateway) checkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

func TestSlugToTitle(t *testing.T) {
	cases := map[string]string{
		"3d-printing-basics": "3D Printing Basics",
		"2-day-lab":          "2 Day Lab",
		"robotics-101-intro": "Robotics 101 Intro",
		"intro":              "Intro",
		"":                   "",
		"iOT-lab":            "IOT Lab",
		"électronique-base":  "Électronique Base",
	}
	for in, want := range cases {
		assert.Equal(t, want, SlugToTitle(in), in)
	}
}

func TestConfigFromURL(t *testing.T) {
	cfg, err := ConfigFromURL("https://cart.example/?code=intro&nothingplease=1")
	require.NoError(t, err)
	assert.Equal(t, SessionConfig{Code: "intro", Decline: true}, cfg)

	cfg, err = ConfigFromURL("https://cart.example/?code=intro&nothingplease=true")
	require.NoError(t, err)
	assert.False(t, cfg.Decline)

	cfg, err = ConfigFromURL("https://cart.example/")
	require.NoError(t, err)
	assert.False(t, cfg.HasCode())

	_, err = ConfigFromURL("://bad")
	assert.Error(t, err)
}

func TestResolveNoCode(t *testing.T) {
	gw := newFakeGateway()
	c := NewController(gw, gw, nil, time.Second)

	st := c.Resolve(context.Background(), SessionConfig{Decline: true})
	assert.Equal(t, models.ViewNoCode, st.View)
	assert.False(t, st.Accessible)
	assert.False(t, st.Locked)
	assert.Empty(t, st.Title)
	assert.Zero(t, gw.checkCount())
}

func TestResolveCheckOutcomes(t *testing.T) {
	cases := []struct {
		name       string
		submitted  bool
		err        error
		view       models.SessionView
		accessible bool
		locked     bool
	}{
		{"already submitted", true, nil, models.ViewLocked, false, true},
		{"not submitted", false, nil, models.ViewAccessible, true, false},
		{"check fails open", false, errors.New("network down"), models.ViewAccessible, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway()
			gw.submitted = tc.submitted
			gw.checkErr = tc.err
			c := NewController(gw, gw, nil, time.Second)

			st := c.Resolve(context.Background(), SessionConfig{Code: "3d-printing-basics"})
			assert.Equal(t, tc.view, st.View)
			assert.Equal(t, tc.accessible, st.Accessible)
			assert.Equal(t, tc.locked, st.Locked)
			assert.Equal(t, "3D Printing Basics", st.Title)
			assert.Equal(t, 1, gw.checkCount())
			assert.Empty(t, gw.sent)
		})
	}
}

func TestResolveDeclineMode(t *testing.T) {
	for _, sendErr := range []error{nil, errors.New("smtp down")} {
		gw := newFakeGateway()
		gw.sendErr = sendErr
		c := NewController(gw, gw, nil, time.Second)

		st := c.Resolve(context.Background(), SessionConfig{Code: "intro", Decline: true})
		assert.Equal(t, models.ViewDecline, st.View)
		assert.True(t, st.DeclineMode)
		assert.False(t, st.Accessible)

		select {
		case <-gw.sentCh:
		case <-time.After(2 * time.Second):
			t.Fatal("decline notification was not sent")
		}

		gw.mu.Lock()
		require.Len(t, gw.sent, 1)
		p := gw.sent[0]
		gw.mu.Unlock()
		assert.Equal(t, "intro", p.Code)
		assert.Equal(t, []models.PayloadItem{{ID: "Nothing Please", Quantity: 1}}, p.Items)
		assert.Equal(t, "0.00", p.Subtotal)
		assert.Equal(t, models.FormData{}, p.FormData)
		assert.Zero(t, gw.checkCount())
		assert.Equal(t, models.ViewDecline, st.View)
	}
}
