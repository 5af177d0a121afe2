package commits

import (
	"strings"
	"testing"

	"github.com/maxbolgarin/whoami/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushEvent(id, repoURL string, messages ...string) model.RawEvent {
	ev := model.RawEvent{
		ID:   id,
		Type: model.PushEventType,
		Repo: model.RawRepo{URL: repoURL},
	}
	for _, m := range messages {
		ev.Payload.Commits = append(ev.Payload.Commits, model.RawCommit{Message: m})
	}
	return ev
}

func TestNormalizeSinglePush(t *testing.T) {
	events := []model.RawEvent{
		pushEvent("1", "https://api.github.com/repos/acme/widget", "fix bug\ndetails here"),
	}

	feed, err := Normalize(events)
	require.NoError(t, err)
	require.Equal(t, 1, feed.Len())

	c := feed.Commits[0]
	assert.Equal(t, "acme/widget", c.RepoName)
	assert.Equal(t, "https://github.com/acme/widget", c.RepoURL)
	assert.Equal(t, "fix bug", c.MessageShort)
	assert.Equal(t, "fix bug\ndetails here", c.Message)
}

func TestNormalizeSkipsNonPush(t *testing.T) {
	watch := model.RawEvent{
		ID:   "2",
		Type: "WatchEvent",
		Repo: model.RawRepo{URL: "https://api.github.com/repos/acme/widget"},
	}
	// commits on a non-push event must be ignored as well
	create := pushEvent("3", "no marker here", "should not appear")
	create.Type = "CreateEvent"

	feed, err := Normalize([]model.RawEvent{watch, create})
	require.NoError(t, err)
	assert.Empty(t, feed.Commits)
}

func TestNormalizePushWithoutCommits(t *testing.T) {
	ev := pushEvent("4", "https://api.github.com/repos/acme/widget")
	require.Nil(t, ev.Payload.Commits)

	feed, err := Normalize([]model.RawEvent{ev})
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Len())
}

func TestNormalizeCountAndOrder(t *testing.T) {
	events := []model.RawEvent{
		pushEvent("a", "https://api.github.com/repos/acme/one", "a1", "a2"),
		{ID: "b", Type: "IssuesEvent"},
		pushEvent("c", "https://api.github.com/repos/acme/two"),
		pushEvent("d", "https://api.github.com/repos/acme/three", "d1"),
		pushEvent("e", "https://api.github.com/repos/acme/one", "a1"),
	}

	feed, err := Normalize(events)
	require.NoError(t, err)

	var got []string
	for _, c := range feed.Commits {
		got = append(got, c.RepoName+":"+c.Message)
	}
	// duplicates across events are kept
	assert.Equal(t, []string{"acme/one:a1", "acme/one:a2", "acme/three:d1", "acme/one:a1"}, got)
}

func TestNormalizeIsPure(t *testing.T) {
	events := []model.RawEvent{
		pushEvent("a", "https://api.github.com/repos/acme/one", "first\nsecond", strings.Repeat("x", 70)),
		pushEvent("b", "https://api.github.com/repos/acme/two", "third"),
	}

	first, err := Normalize(events)
	require.NoError(t, err)
	second, err := Normalize(events)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeMissingMarker(t *testing.T) {
	events := []model.RawEvent{
		pushEvent("bad", "https://api.github.com/acme/widget", "msg"),
	}

	feed, err := Normalize(events)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindDataShape))
	assert.Contains(t, err.Error(), "bad")
	assert.Empty(t, feed.Commits)
}

func TestNormalizeForHost(t *testing.T) {
	events := []model.RawEvent{
		pushEvent("1", "https://git.example.com/api/v3/repos/team/app", "msg"),
	}

	feed, err := NormalizeForHost(events, "git.example.com/")
	require.NoError(t, err)
	require.Equal(t, 1, feed.Len())
	assert.Equal(t, "team/app", feed.Commits[0].RepoName)
	assert.Equal(t, "https://git.example.com/team/app", feed.Commits[0].RepoURL)
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://api.github.com/repos/acme/widget", want: "acme/widget"},
		{url: "https://api.github.com/repos/acme/widget/", want: "acme/widget"},
		{url: "repos/a/b", want: "a/b"},
		{url: "https://api.github.com/users/acme", wantErr: true},
		{url: "https://api.github.com/repos/", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := RepoName(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortMessage(t *testing.T) {
	t.Run("short first line kept as is", func(t *testing.T) {
		assert.Equal(t, "fix bug", ShortMessage("fix bug\n\nlong body"))
		assert.Equal(t, "", ShortMessage(""))
		assert.Equal(t, "", ShortMessage("\nbody only"))
	})

	t.Run("exactly fifty characters", func(t *testing.T) {
		line := strings.Repeat("a", 50)
		assert.Equal(t, line, ShortMessage(line+"\nrest"))
	})

	t.Run("sixty characters truncated", func(t *testing.T) {
		line := strings.Repeat("abcdef", 10)
		got := ShortMessage(line)
		assert.Len(t, got, 50)
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Equal(t, line[:47], got[:47])
	})

	t.Run("only the first line counts", func(t *testing.T) {
		msg := "short\n" + strings.Repeat("z", 100)
		assert.Equal(t, "short", ShortMessage(msg))
	})

	t.Run("crlf line ending", func(t *testing.T) {
		assert.Equal(t, "windows", ShortMessage("windows\r\nbody"))
	})

	t.Run("multibyte characters are not split", func(t *testing.T) {
		line := strings.Repeat("ü", 55)
		got := ShortMessage(line)
		assert.Equal(t, strings.Repeat("ü", 47)+"...", got)
	})

	t.Run("never longer than fifty", func(t *testing.T) {
		for n := 0; n < 120; n++ {
			got := ShortMessage(strings.Repeat("m", n))
			assert.LessOrEqual(t, len(got), model.MaxShortMessage)
		}
	})
}
