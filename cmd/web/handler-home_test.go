package main

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_home(t *testing.T) {
	server := startTestServer(t, nil)
	client := server.Client()
	ctx := context.Background()

	resp, err := client.Get(ctx, "/")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	csp := resp.Header.Get("Content-Security-Policy")
	require.Contains(t, csp, "'nonce-")
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main#court.intro").Length())
	require.Equal(t, "Sperm Court", strings.Trim(doc.Find("h1").First().Text(), "⚖️ "))
	require.Equal(t, 1, doc.Find("form[action='/start'] button.btn.btn-primary[type=submit]").Length())
	require.Zero(t, doc.Find("court-button, court-panel").Length(), "custom elements are expanded")

	nonce, ok := doc.Find("script").First().Attr("nonce")
	require.True(t, ok)
	require.Contains(t, csp, "'nonce-"+nonce+"'")
}

// judgeCase submits verdict for the open case with a plain form post and returns the page after the redirect.
func judgeCase(t *testing.T, client *e2etest.Client, verdict court.Verdict) *goquery.Document {
	t.Helper()
	doc, err := client.SubmitForm(context.Background(), "/", "/trial/judge", url.Values{"verdict": {string(verdict)}})
	require.NoError(t, err)
	return doc
}

func Test_application_fullTrial(t *testing.T) {
	server := startTestServer(t, fastEnv)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.SubmitForm(ctx, "/", "/start", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main#court.trial").Length())
	require.Equal(t, "1", doc.Find("[data-testid=case-number]").Text())
	require.Equal(t, "Loitering in Seminal Fluid", doc.Find("[data-testid=charge]").Text())
	require.Equal(t, "0", doc.Find("[data-testid=score]").Text())

	doc, err = client.SubmitForm(ctx, "/", "/trial/objection", nil)
	require.NoError(t, err)
	require.Equal(t, "110", doc.Find("[data-testid=score]").Text())
	require.Equal(t, "1", doc.Find("[data-testid=objections]").Text())

	verdicts := []court.Verdict{court.Guilty, court.Innocent, court.Innocent, court.Guilty}
	for i, verdict := range verdicts {
		doc = judgeCase(t, client, verdict)
		require.Equal(t, strconv.Itoa(i+2), doc.Find("[data-testid=case-number]").Text())
	}
	doc = judgeCase(t, client, court.Innocent)

	require.Equal(t, 1, doc.Find("main#court.verdict").Length())
	require.Equal(t, "460 pts", doc.Find("[data-testid=final-score]").Text())
	require.Equal(t, "2 GUILTY", doc.Find("[data-testid=guilty-count]").Text())
	require.Equal(t, "3 INNOCENT", doc.Find("[data-testid=innocent-count]").Text())
	require.Equal(t, "GOOD", doc.Find("[data-testid=grade]").Text())
	require.Equal(t, "Banished to the vas deferens for 1000 laps.", doc.Find("[data-testid=sentence]").Text())
	require.Equal(t, "2", doc.Find("[data-testid=unlocked-count]").Text())
	require.Contains(t, doc.Find("[data-testid=share]").Text(), "📊 Health Grade: GOOD")
	require.Contains(t, doc.Find("[data-testid=share]").Text(), "Powered by Sperm Racing Kit 🏁")
	require.Equal(t, 2, doc.Find(".achievements li.unlocked").Length())

	// The trial is archived in the background.
	require.Eventually(t, func() bool {
		doc, err = client.GetDoc(ctx, "/records")
		return err == nil && doc.Find("[data-testid=record]").Length() == 1
	}, 5*time.Second, 20*time.Millisecond)
	require.Equal(t, "460", doc.Find("[data-testid=record-score]").Text())
	require.Contains(t, doc.Find("[data-testid=record] code").Text(), "GIIGI")

	doc, err = client.SubmitForm(ctx, "/", "/reset", url.Values{"to": {"intro"}})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main#court.intro").Length())

	// Second trial: everyone is guilty.
	_, err = client.SubmitForm(ctx, "/", "/start", nil)
	require.NoError(t, err)
	for range 5 {
		doc = judgeCase(t, client, court.Guilty)
	}
	require.Equal(t, "200 pts", doc.Find("[data-testid=final-score]").Text())
	require.Equal(t, "NEEDS IMPROVEMENT", doc.Find("[data-testid=grade]").Text())
	require.Equal(t, "Life in the left testicle without parole.", doc.Find("[data-testid=sentence]").Text())
	require.Contains(t, doc.Find(".achievements li.unlocked").Text(), "Harsh Judge")

	doc, err = client.SubmitForm(ctx, "/", "/reset", url.Values{"to": {"trial"}})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main#court.trial").Length())
	require.Equal(t, "1", doc.Find("[data-testid=case-number]").Text())
	require.Equal(t, "0", doc.Find("[data-testid=score]").Text())
	require.Zero(t, doc.Find(".achievements li.unlocked").Length())

	require.Eventually(t, func() bool {
		doc, err = client.GetDoc(ctx, "/records")
		return err == nil && doc.Find("[data-testid=record]").Length() == 2
	}, 5*time.Second, 20*time.Millisecond)
	require.Equal(t, "460", doc.Find("[data-testid=record-score]").First().Text(), "best trial first")
}

func Test_application_playersAreIsolated(t *testing.T) {
	server := startTestServer(t, fastEnv)
	ctx := context.Background()

	alice := server.Client()
	_, err := alice.SubmitForm(ctx, "/", "/start", nil)
	require.NoError(t, err)

	bob, err := server.NewClient()
	require.NoError(t, err)
	doc, err := bob.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main#court.intro").Length())

	doc, err = alice.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("main#court.trial").Length())
}

func Test_application_htmxFragments(t *testing.T) {
	// Default durations keep the banner and the reaction on screen while the test looks at them.
	server := startTestServer(t, nil)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.SubmitFormHTMX(ctx, "/", "/start", nil)
	require.NoError(t, err)
	require.Zero(t, doc.Find("header.masthead").Length(), "fragment has no layout")
	require.Equal(t, 1, doc.Find("main#court.trial #trial[sse-connect='/trial/events'][sse-swap=state]").Length())
	healthInfo := doc.Find("details#health-info-1[data-testid=health-info]")
	require.Equal(t, 1, healthInfo.Length())
	_, open := healthInfo.Attr("open")
	require.False(t, open, "health info starts collapsed")
	require.NotEmpty(t, strings.TrimSpace(healthInfo.Find(".health-note").Text()))
	require.Equal(t, "⚠️ Below WHO Standard (40%)", doc.Find("[data-testid=motility-status]").Text())

	doc, err = client.SubmitFormHTMX(ctx, "/", "/trial/objection", nil)
	require.NoError(t, err)
	require.Zero(t, doc.Find("main").Length(), "objection only swaps the trial state")
	require.Equal(t, "110", doc.Find("[data-testid=score]").Text())
	require.Equal(t, "OBJECTION!", doc.Find("[data-testid=objection-banner]").Text())
	require.Contains(t, doc.Find("[data-testid=toast]").Text(), "First Objection!")
	require.Equal(t, 1, doc.Find("[data-testid=judge].shaking").Length())

	doc, err = client.SubmitFormHTMX(ctx, "/", "/trial/judge", url.Values{"verdict": {string(court.Guilty)}})
	require.NoError(t, err)
	require.Equal(t, "160", doc.Find("[data-testid=score]").Text())
	require.Contains(t, doc.Find("[data-testid=reaction]").Text(), "Pathetic!")
	require.Zero(t, doc.Find("form[action='/trial/judge']").Length(), "no verdicts while the judge reacts")

	_, err = client.SubmitFormHTMX(ctx, "/", "/trial/judge", url.Values{"verdict": {string(court.Guilty)}})
	require.Error(t, err, "judge form is hidden during the reaction")
}

func Test_application_rejectsMalformedInput(t *testing.T) {
	server := startTestServer(t, fastEnv)
	client := server.Client()
	ctx := context.Background()

	_, err := client.SubmitForm(ctx, "/", "/start", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		action string
		values url.Values
	}{
		{name: "unknown verdict", action: "/trial/judge", values: url.Values{"verdict": {"maybe"}}},
		{name: "malformed case", action: "/trial/judge", values: url.Values{"verdict": {"guilty"}, "case": {"first"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SubmitForm(ctx, "/", tt.action, tt.values)
			require.ErrorContains(t, err, "unexpected status code")
		})
	}

	var snap court.Snapshot
	require.NoError(t, client.GetJSON(ctx, "/api/session", &snap))
	require.Equal(t, court.ScreenTrial, snap.Screen)
	require.Equal(t, 0, snap.CaseIndex)
	require.Empty(t, snap.Verdicts)
}

func Test_application_rejectsMissingCSRFToken(t *testing.T) {
	server := startTestServer(t, nil)
	client := server.Client()

	resp, err := client.HTTPClient().PostForm(server.URL()+"/start", url.Values{})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_application_formPostsRespondByRequestKind(t *testing.T) {
	server := startTestServer(t, fastEnv)
	client := server.Client()
	ctx := context.Background()

	_, err := client.SubmitForm(ctx, "/", "/start", nil)
	require.NoError(t, err)
	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)
	token, ok := doc.Find("form[action='/trial/objection'] input[name=csrf_token]").Attr("value")
	require.True(t, ok)

	noRedirects := *client.HTTPClient()
	noRedirects.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	tests := []struct {
		name       string
		htmx       bool
		wantStatus int
	}{
		{name: "plain post is redirected home", htmx: false, wantStatus: http.StatusSeeOther},
		{name: "htmx post gets the fragment", htmx: true, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.NewReader(url.Values{"csrf_token": {token}}.Encode())
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, server.URL()+"/trial/objection", body)
			require.NoError(t, reqErr)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Origin", server.URL())
			req.Header.Set("Referer", server.URL()+"/")
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			resp, doErr := noRedirects.Do(req)
			require.NoError(t, doErr)
			defer func() {
				assert.NoError(t, resp.Body.Close())
			}()
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if !tt.htmx {
				require.Equal(t, "/", resp.Header.Get("Location"))
				return
			}
			fragment, docErr := goquery.NewDocumentFromReader(resp.Body)
			require.NoError(t, docErr)
			require.Zero(t, fragment.Find("main, header.masthead, link[rel=stylesheet]").Length())
			require.Equal(t, 1, fragment.Find("[data-testid=score]").Length())
		})
	}
}
