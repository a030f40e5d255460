package botdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/botgames/internal/botdata"
)

func TestParseLibraryPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []botdata.LibraryPath
	}{
		{name: "Empty", input: "", expected: nil},
		{name: "Only separators", input: " ; ;", expected: nil},
		{
			name:     "Single file",
			input:    "lib/dice.jar",
			expected: []botdata.LibraryPath{{Path: "lib/dice.jar"}},
		},
		{
			name:  "Directory and files keep order",
			input: "classes/;lib/a.jar;lib/b.jar",
			expected: []botdata.LibraryPath{
				{Path: "classes/", Dir: true},
				{Path: "lib/a.jar"},
				{Path: "lib/b.jar"},
			},
		},
		{
			name:     "Whitespace and empty entries",
			input:    " classes/ ;; lib/a.jar ;",
			expected: []botdata.LibraryPath{{Path: "classes/", Dir: true}, {Path: "lib/a.jar"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, botdata.ParseLibraryPaths(tt.input))
		})
	}
}

func TestJoinLibraryPaths(t *testing.T) {
	t.Parallel()

	stored := "classes/;lib/a.jar"
	assert.Equal(t, stored, botdata.JoinLibraryPaths(botdata.ParseLibraryPaths(stored)))
	assert.Empty(t, botdata.JoinLibraryPaths(nil))

	joined := botdata.JoinLibraryPaths([]botdata.LibraryPath{{Path: "classes", Dir: true}, {Path: "x.jar"}})
	parsed := botdata.ParseLibraryPaths(joined)
	assert.Len(t, parsed, 2)
	assert.True(t, parsed[0].Dir)
	assert.False(t, parsed[1].Dir)
}

func TestParseLibraryPaths_BackslashMarksDirectory(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]botdata.LibraryPath{{Path: `C:\lib\`, Dir: true}, {Path: `C:\lib\dice.jar`}},
		botdata.ParseLibraryPaths(`C:\lib\;C:\lib\dice.jar`))
}

func TestCheckLibraryPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		paths   []botdata.LibraryPath
		wantErr bool
	}{
		{name: "Nil", paths: nil},
		{name: "Files and directories", paths: []botdata.LibraryPath{{Path: "classes/", Dir: true}, {Path: "classes", Dir: true}, {Path: "lib/a.jar"}}},
		{name: "Separator inside path", paths: []botdata.LibraryPath{{Path: "lib/a;b.jar"}}, wantErr: true},
		{name: "File with trailing slash", paths: []botdata.LibraryPath{{Path: "classes/"}}, wantErr: true},
		{name: "Empty path", paths: []botdata.LibraryPath{{Path: ""}}, wantErr: true},
		{name: "Trailing space", paths: []botdata.LibraryPath{{Path: "lib/a.jar "}}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := botdata.CheckLibraryPaths(tt.paths)
			if tt.wantErr {
				assert.ErrorIs(t, err, botdata.ErrNotStorable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.paths), len(botdata.ParseLibraryPaths(botdata.JoinLibraryPaths(tt.paths))))
		})
	}
}

func TestCheckEmoticonKeys(t *testing.T) {
	t.Parallel()

	require.NoError(t, botdata.CheckEmoticonKeys([]string{"!start", "!j"}))
	assert.ErrorIs(t, botdata.CheckEmoticonKeys([]string{"!a,b"}), botdata.ErrNotStorable)
	assert.ErrorIs(t, botdata.CheckEmoticonKeys([]string{" !j"}), botdata.ErrNotStorable)
	assert.ErrorIs(t, botdata.CheckEmoticonKeys([]string{""}), botdata.ErrNotStorable)
}

func TestParseEmoticonKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "Empty", input: "", expected: nil},
		{name: "Comma and space", input: "!start, !j, !r", expected: []string{"!start", "!j", "!r"}},
		{name: "No spaces", input: "!start,!j", expected: []string{"!start", "!j"}},
		{name: "Empty tokens dropped", input: ",!start,, ,!n,", expected: []string{"!start", "!n"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, botdata.ParseEmoticonKeys(tt.input))
		})
	}
}

func TestJoinEmoticonKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "!start, !j, !d, !n", botdata.JoinEmoticonKeys([]string{"!start", "!j", "!d", "!n"}))
	assert.Empty(t, botdata.JoinEmoticonKeys(nil))
}
