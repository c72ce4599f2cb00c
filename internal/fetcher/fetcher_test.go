package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/linktorch-search/internal/fetcher"
	"github.com/fuzumoe/linktorch-search/internal/search"
)

const homeHTML = `<!DOCTYPE html>
<html>
  <head>
    <title>Gopher Home</title>
    <script>var needle = 1;</script>
  </head>
  <body>
    <p>Hello</p><p>World</p>
    <a href="/about">About</a>
    <a href="/about#team">Team</a>
    <a href="https://other.example/x">External</a>
    <a href="#top">Top</a>
    <a href="mailto:someone@example.com">Mail</a>
    <a href="/private" rel="nofollow">Private</a>
    <a href="blog/post?id=1">Post</a>
  </body>
</html>`

func newSite(t *testing.T, robots string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if robots == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(robots))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(homeHTML))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>About the needle team <a href="/">home</a></body></html>`))
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>secret</body></html>`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTMLFetcher_Fetch(t *testing.T) {
	ts := newSite(t, "")
	f := fetcher.New(fetcher.Options{Timeout: 5 * time.Second, RespectRobots: true})

	page := search.NewPage(ts.URL+"/", 0)
	require.NoError(t, f.Fetch(context.Background(), page))
	require.True(t, page.Fetched())

	t.Run("Text", func(t *testing.T) {
		assert.Contains(t, page.Content(), "Gopher Home")
		assert.Contains(t, page.Content(), "Hello World", "adjacent paragraphs keep a separator")
		assert.False(t, page.ContainsKeyword("needle"), "script bodies are not page text")
		assert.True(t, page.ContainsKeyword("gopher"))
	})

	t.Run("Links", func(t *testing.T) {
		var got []string
		for child := range page.OutboundLinks() {
			got = append(got, child.Address())
			assert.Equal(t, 1, child.Depth())
		}
		assert.Equal(t, []string{
			ts.URL + "/about",
			"https://other.example/x",
			ts.URL + "/blog/post?id=1",
		}, got)
	})
}

func TestHTMLFetcher_Failures(t *testing.T) {
	ts := newSite(t, "User-agent: *\nDisallow: /private\n")
	f := fetcher.New(fetcher.Options{RespectRobots: true})
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		err := f.Fetch(ctx, search.NewPage(ts.URL+"/missing", 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})

	t.Run("RobotsDisallow", func(t *testing.T) {
		err := f.Fetch(ctx, search.NewPage(ts.URL+"/private", 0))
		assert.ErrorIs(t, err, fetcher.ErrDisallowed)
	})

	t.Run("RobotsAllow", func(t *testing.T) {
		assert.NoError(t, f.Fetch(ctx, search.NewPage(ts.URL+"/about", 0)))
	})

	t.Run("UnsupportedScheme", func(t *testing.T) {
		err := f.Fetch(ctx, search.NewPage("ftp://example.com/file", 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported scheme")
	})

	t.Run("Unreachable", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		addr := dead.URL
		dead.Close()
		assert.Error(t, f.Fetch(ctx, search.NewPage(addr+"/", 0)))
	})
}

func TestHTMLFetcher_RobotsIgnoredWhenDisabled(t *testing.T) {
	ts := newSite(t, "User-agent: *\nDisallow: /\n")
	f := fetcher.New(fetcher.Options{})

	assert.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/private", 0)))
}

func TestHTMLFetcher_RobotsFetchedOncePerHost(t *testing.T) {
	var robotsHits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ts.Close()

	f := fetcher.New(fetcher.Options{RespectRobots: true})
	for _, path := range []string{"/a", "/b", "/c"} {
		require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+path, 0)))
	}
	assert.Equal(t, int32(1), robotsHits.Load())
}

func TestHTMLFetcher_RobotsServerErrorIsRetried(t *testing.T) {
	var robotsHits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			if robotsHits.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ts.Close()

	f := fetcher.New(fetcher.Options{RespectRobots: true})

	err := f.Fetch(context.Background(), search.NewPage(ts.URL+"/p", 0))
	assert.ErrorIs(t, err, fetcher.ErrDisallowed)

	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/p", 0)))
	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/q", 0)))
	assert.Equal(t, int32(2), robotsHits.Load())
}

func TestHTMLFetcher_RobotsNotCachedOnCancelledLoad(t *testing.T) {
	ts := newSite(t, "User-agent: *\nDisallow: /about\n")
	f := fetcher.New(fetcher.Options{RespectRobots: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, f.Fetch(ctx, search.NewPage(ts.URL+"/about", 0)))

	err := f.Fetch(context.Background(), search.NewPage(ts.URL+"/about", 0))
	assert.ErrorIs(t, err, fetcher.ErrDisallowed)
}

func TestHTMLFetcher_RobotsCacheExpires(t *testing.T) {
	var robotsHits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ts.Close()

	f := fetcher.New(fetcher.Options{RespectRobots: true, RobotsTTL: 50 * time.Millisecond})
	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/a", 0)))
	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/b", 0)))
	assert.Equal(t, int32(1), robotsHits.Load())

	time.Sleep(80 * time.Millisecond)
	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/c", 0)))
	assert.Equal(t, int32(2), robotsHits.Load())
}

func TestHTMLFetcher_UserAgent(t *testing.T) {
	var ua atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.UserAgent())
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer ts.Close()

	f := fetcher.New(fetcher.Options{UserAgent: "TestBot/2.0"})
	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL, 0)))
	assert.Equal(t, "TestBot/2.0", ua.Load())
}

func TestHTMLFetcher_RateLimitHonoursContext(t *testing.T) {
	ts := newSite(t, "")
	f := fetcher.New(fetcher.Options{HostRate: 0.001, HostBurst: 1})

	require.NoError(t, f.Fetch(context.Background(), search.NewPage(ts.URL+"/about", 0)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, f.Fetch(ctx, search.NewPage(ts.URL+"/about", 0)))
}

func TestHTMLFetcher_DrivesEngine(t *testing.T) {
	ts := newSite(t, "")
	f := fetcher.New(fetcher.Options{Timeout: 2 * time.Second})

	sink := search.NewMemorySink()
	sess := search.NewSession("needle", sink)
	sess.SetMaxDepth(1)
	sess.SetMaxLinksPerPage(3)
	search.NewEngine(sess, search.NewQueueFrontier(), f).Search(context.Background(), ts.URL+"/")

	res := sink.Results()
	require.Len(t, res, 4)
	assert.Equal(t, ts.URL+"/about", res[1].Page().Address())
	assert.True(t, res[1].Matched())
	assert.False(t, res[2].FetchSucceeded(), "other.example is not reachable from the test")
	assert.False(t, res[3].FetchSucceeded(), "blog post is a 404")
}
