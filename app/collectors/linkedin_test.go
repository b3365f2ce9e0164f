package collectors

import (
	"testing"
)

func TestExtractLinkedInProfile(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{
			"https://www.linkedin.com/posts/janedoe-activity-7123456789",
			"https://www.linkedin.com/in/janedoe/",
		},
		{
			"https://www.linkedin.com/pulse/some-article",
			"N/A",
		},
		{
			"https://example.com/not-linkedin",
			"N/A",
		},
	}

	for _, tc := range cases {
		if got := extractLinkedInProfile(tc.link); got != tc.want {
			t.Errorf("extractLinkedInProfile(%q): expected %q, got %q", tc.link, tc.want, got)
		}
	}
}

func TestCleanLinkedInTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Jane Doe on SHRM verdict | LinkedIn", "Jane Doe on SHRM verdict"},
		{"Jane Doe on SHRM verdict | linkedin", "Jane Doe on SHRM verdict"},
		{"No suffix here", "No suffix here"},
		{" | LinkedIn", "N/A"},
		{"", "N/A"},
	}

	for _, tc := range cases {
		if got := cleanLinkedInTitle(tc.title); got != tc.want {
			t.Errorf("cleanLinkedInTitle(%q): expected %q, got %q", tc.title, tc.want, got)
		}
	}
}

func TestProfileFromLink(t *testing.T) {
	if got := profileFromLink("https://www.linkedin.com/in/janedoe/"); got != "janedoe" {
		t.Errorf("Expected 'janedoe', got %q", got)
	}
}
