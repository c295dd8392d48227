package canonical

import "testing"

func TestNormalizeURLBoardPatterns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "linkedin view path",
			in:   "https://www.linkedin.com/jobs/view/3782554321?refId=abc&trackingId=xyz",
			want: "https://www.linkedin.com/jobs/view/3782554321",
		},
		{
			name: "linkedin view path trailing segment",
			in:   "https://linkedin.com/jobs/view/3782554321/other",
			want: "https://www.linkedin.com/jobs/view/3782554321",
		},
		{
			name: "linkedin currentJobId param",
			in:   "https://www.linkedin.com/jobs/search/?currentJobId=99887766&keywords=go",
			want: "https://www.linkedin.com/jobs/view/99887766",
		},
		{
			name: "indeed jk param",
			in:   "https://www.indeed.com/rc/clk?jk=deadbeef01&from=ja",
			want: "https://www.indeed.com/viewjob?jk=deadbeef01",
		},
		{
			name: "indeed vjk param",
			in:   "https://www.indeed.com/jobs?q=golang&vjk=deadbeef02",
			want: "https://www.indeed.com/viewjob?jk=deadbeef02",
		},
		{
			name: "generic host strips tracking only",
			in:   "https://weworkremotely.com/remote-jobs/acme-123?utm_source=x&page=2",
			want: "https://weworkremotely.com/remote-jobs/acme-123?page=2",
		},
		{
			name: "all params tracked drops query entirely",
			in:   "https://example.com/job/42?utm_source=x&utm_medium=email&ref=digest",
			want: "https://example.com/job/42",
		},
		{
			name: "param order preserved",
			in:   "https://example.com/j?b=2&utm_campaign=spring&a=1",
			want: "https://example.com/j?b=2&a=1",
		},
		{
			name: "no query untouched",
			in:   "https://example.com/job/42",
			want: "https://example.com/job/42",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "unparseable input unchanged",
			in:   "https://exa mple.com/%zz?utm_source=x",
			want: "https://exa mple.com/%zz?utm_source=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.in)
			if got != tt.want {
				t.Fatalf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.linkedin.com/jobs/view/3782554321?refId=abc",
		"https://www.indeed.com/rc/clk?jk=deadbeef01&from=ja",
		"https://weworkremotely.com/remote-jobs/acme-123?utm_source=x&page=2",
		"https://example.com/job/42",
		"https://example.com/j?b=2&a=1",
		"",
		"not a url at all",
	}
	for _, in := range inputs {
		once := NormalizeURL(in)
		twice := NormalizeURL(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
