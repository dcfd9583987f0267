package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SplitLine_Groups_Quoted_Words(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{`ls`, []string{"ls"}},
		{`add  Hades   -P 4`, []string{"add", "Hades", "-P", "4"}},
		{`add "Baldur's Gate 3"`, []string{"add", "Baldur's Gate 3"}},
		{`add 'say "hi"'`, []string{"add", `say "hi"`}},
		{`add Outer\ Wilds`, []string{"add", "Outer Wilds"}},
		{`edit a1 --notes=""`, []string{"edit", "a1", "--notes="}},
		{`add ""`, []string{"add", ""}},
	}

	for _, tc := range cases {
		got, err := splitLine(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func Test_SplitLine_Fails_When_Quote_Unterminated(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`add "Hades`, `add 'x`, `add x\`} {
		_, err := splitLine(in)
		require.ErrorIs(t, err, errUnterminatedQuote, in)
	}
}

func Test_Complete_Offers_Commands_And_Values(t *testing.T) {
	t.Parallel()

	a := &app{}

	assert.Equal(t, []string{"show", "sort", "stats", "status", "suggestions"}, a.complete("s"))
	assert.Contains(t, a.complete(""), "add")
	assert.Equal(t, []string{"filter backlog"}, a.complete("filter ba"))
	assert.Equal(t, []string{"sort dateAdded"}, a.complete("sort d"))
	assert.Len(t, a.complete("sort "), 4)
	assert.Equal(t, []string{"status a1 completed"}, a.complete("status a1 comp"))
	assert.Empty(t, a.complete("show a"))
}
