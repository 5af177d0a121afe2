// Package commits turns the raw public events feed into display-ready commits.
package commits

import (
	"strings"
	"unicode/utf8"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/whoami/internal/model"
)

const opNormalize = "normalize events"

// Normalize keeps push events only and flattens their commits in feed order.
// It returns a data shape error if a push event carries a repo url without the repos/ marker.
func Normalize(events []model.RawEvent) (model.CommitFeed, error) {
	return NormalizeForHost(events, model.WebHost)
}

// NormalizeForHost is Normalize with a custom web host for repository links
func NormalizeForHost(events []model.RawEvent, host string) (model.CommitFeed, error) {
	out := make([]model.DisplayCommit, 0, len(events))

	for _, event := range events {
		if !event.IsPush() || len(event.Payload.Commits) == 0 {
			continue
		}

		name, err := RepoName(event.Repo.URL)
		if err != nil {
			return model.CommitFeed{}, model.NewFetchError(model.KindDataShape, opNormalize,
				errm.Wrap(err, "event "+event.ID))
		}
		repoURL := RepoURL(host, name)

		for _, c := range event.Payload.Commits {
			out = append(out, model.DisplayCommit{
				RepoName:     name,
				RepoURL:      repoURL,
				Message:      c.Message,
				MessageShort: ShortMessage(c.Message),
			})
		}
	}

	return model.CommitFeed{Commits: out}, nil
}

// RepoName returns the part of an API repo url following the first repos/ marker.
// It is a convention of the GitHub API, not a general url rule.
func RepoName(apiURL string) (string, error) {
	_, name, found := strings.Cut(apiURL, model.RepoURLMarker)
	if !found {
		return "", errm.Errorf("repo url %q has no %q marker", apiURL, model.RepoURLMarker)
	}
	name = strings.Trim(name, "/")
	if name == "" {
		return "", errm.Errorf("repo url %q has empty name after %q", apiURL, model.RepoURLMarker)
	}
	return name, nil
}

// RepoURL builds a browsable link for the repository
func RepoURL(host, name string) string {
	return "https://" + strings.TrimSuffix(host, "/") + "/" + name
}

// ShortMessage returns the first line of a commit message,
// cut to 47 characters plus an ellipsis if it is longer than 50.
func ShortMessage(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	line = strings.TrimSuffix(line, "\r")

	if utf8.RuneCountInString(line) <= model.MaxShortMessage {
		return line
	}

	runes := []rune(line)
	return string(runes[:model.ShortMessageCut]) + model.Ellipsis
}
