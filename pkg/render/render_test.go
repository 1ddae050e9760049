package render

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

var testFS = fstest.MapFS{
	"base.html": {Data: []byte(
		`<title>{{block "title" .}}Site{{end}}</title>{{template "nav" .}}|{{block "content" .}}{{end}}`)},
	"includes/nav.html": {Data: []byte(
		`{{define "nav"}}{{if .User.IsAuthenticated}}hi {{.User.Username}}{{else}}anon{{end}} {{.Path}}{{end}}`)},
	"posts/index.html": {Data: []byte(
		`{{define "title"}}Index{{end}}{{define "content"}}{{range .Posts}}[{{. | truncatewords 2}}]{{end}}{{end}}`)},
	"posts/detail.html": {Data: []byte(
		`{{define "content"}}{{linebreaksbr .Text}} {{date .CreatedAt}}{{end}}`)},
}

type indexPage struct {
	Posts []string
}

type detailPage struct {
	Text      string
	CreatedAt time.Time
}

func TestRenderer(t *testing.T) {
	r, err := New(testFS, RequestUser, RequestPath)
	require.NoError(t, err)

	ctx := context.Background()
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("GET", "/feed/?page=2", nil))

	buf := new(bytes.Buffer)
	err = r.Render(ctx, buf, "posts/index.html", indexPage{Posts: []string{"one two three", "four"}})
	require.NoError(t, err)
	require.Equal(t, "<title>Index</title>anon /feed/|[one two …][four]", buf.String())

	ctx = xcontext.WithRequestUserID(ctx, "u1")
	ctx = xcontext.WithRequestUsername(ctx, "leo")

	buf.Reset()
	err = r.Render(ctx, buf, "posts/detail.html", &detailPage{
		Text:      "a<b>\nc",
		CreatedAt: time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "<title>Site</title>hi leo /feed/|a&lt;b&gt;<br>c 4 March 2022", buf.String())
}

func TestRenderer_MapData(t *testing.T) {
	r, err := New(testFS, Year, RequestUser)
	require.NoError(t, err)

	data := map[string]any{"Text": "x", "CreatedAt": time.Now()}
	require.NoError(t, r.Render(context.Background(), new(bytes.Buffer), "posts/detail.html", data))
	require.NotContains(t, data, "Year")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := New(testFS)
	require.NoError(t, err)

	err = r.Render(context.Background(), new(bytes.Buffer), "posts/missing.html", nil)
	require.Error(t, err)
}

func TestTruncateWords(t *testing.T) {
	require.Equal(t, "a b", truncateWords(2, "a b"))
	require.Equal(t, "a b …", truncateWords(2, "a  b c"))
}
