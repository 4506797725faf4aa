package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequirements(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Requirement
	}{
		{
			name:    "pinned packages",
			content: "flask==2.0.0\nrequests==2.25.0",
			want: []Requirement{
				{Package: "flask", Version: "2.0.0"},
				{Package: "requests", Version: "2.25.0"},
			},
		},
		{
			name:    "comments blanks and operators",
			content: "# web\n\nDjango >= 3.2\n  numpy<=1.21.0  \npython-dateutil==2.8.2 # pinned",
			want: []Requirement{
				{Package: "django", Version: "3.2"},
				{Package: "numpy", Version: "1.21.0"},
				{Package: "python-dateutil", Version: "2.8.2"},
			},
		},
		{
			name:    "unversioned and unsupported lines are skipped",
			content: "numpy\n-e git+https://github.com/x/y.git\nflask~=2.0\nrich==13.7.1",
			want: []Requirement{
				{Package: "rich", Version: "13.7.1"},
			},
		},
		{
			name:    "empty",
			content: "   \n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRequirements(tt.content))
		})
	}
}
