package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/uf90/errors"
)

func TestTranslate_Identity(t *testing.T) {
	src := "program hello\n  implicit none\n  print *, 'hi' ! greet\nend program hello\n"

	res, err := Translate(src, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, src, res.Text)
	assert.Equal(t, 4, res.Lines)
	assert.Zero(t, res.Replaced)
	assert.Empty(t, res.Unmapped)
}

func TestTranslate_DeclarationExample(t *testing.T) {
	got, err := TranslateText("real :: α, Δt, T₁₀₀, c²", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "real :: uc_alpha, uc_deltat, T_100, c_p2", got)
	for _, want := range []string{"uc_alpha", "uc_delta", "T_100", "c_p2"} {
		assert.Contains(t, got, want)
	}
}

func TestTranslate_Comments(t *testing.T) {
	src := "a = α ! α stays"

	t.Run("preserved", func(t *testing.T) {
		got, err := TranslateText(src, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "a = uc_alpha ! α stays", got)
	})

	t.Run("translated", func(t *testing.T) {
		opts := DefaultOptions()
		opts.PreserveComments = false

		got, err := TranslateText(src, opts)
		require.NoError(t, err)
		assert.Equal(t, "a = uc_alpha ! uc_alpha stays", got)
	})

	t.Run("custom marker", func(t *testing.T) {
		opts := DefaultOptions()
		opts.CommentMarker = '#'

		got, err := TranslateText("a = α # β ! γ", opts)
		require.NoError(t, err)
		assert.Equal(t, "a = uc_alpha # β ! γ", got)
	})

	t.Run("only the first marker splits", func(t *testing.T) {
		got, err := TranslateText("x = 1 ! a ! β", DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "x = 1 ! a ! β", got)
	})
}

func TestTranslate_LineTerminators(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lf", "a = α\nb = β\n", "a = uc_alpha\nb = uc_beta\n"},
		{"crlf", "a = α\r\nb = β\r\n", "a = uc_alpha\r\nb = uc_beta\r\n"},
		{"lone cr", "a = α\rb = β", "a = uc_alpha\rb = uc_beta"},
		{"mixed", "α\r\nβ\rγ\nδ", "uc_alpha\r\nuc_beta\ruc_gamma\nuc_delta"},
		{"blank lines", "\n\nα\n\n", "\n\nuc_alpha\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TranslateText(tt.in, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate_Greek(t *testing.T) {
	// Continuation resets at every line start.
	got, err := TranslateText("xα\nα", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "xalpha\nuc_alpha", got)
}

func TestTranslate_IncrementSignMatchesDelta(t *testing.T) {
	inc, err := TranslateText("∆t = 0.1", DefaultOptions())
	require.NoError(t, err)
	delta, err := TranslateText("Δt = 0.1", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, delta, inc)
	assert.Equal(t, "uc_deltat = 0.1", inc)
}

func TestTranslate_Idempotent(t *testing.T) {
	src := "if (a ≤ b × c) x = √(y) → z ! комментарий\n"

	once, err := TranslateText(src, DefaultOptions())
	require.NoError(t, err)
	twice, err := TranslateText(once, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestTranslateFragment_IdempotentOnGeneratedNames(t *testing.T) {
	// Translate refuses generated names in its input; the fragment pass alone
	// leaves them unchanged.
	out := TranslateFragment("real :: α, Δt, T₁₀₀, c²", DefaultOptions())
	assert.Equal(t, out, TranslateFragment(out, DefaultOptions()))
}

func TestTranslate_Collision(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		collide bool
		reserve string
	}{
		{"generated name", "real :: uc_alpha", true, "uc_alpha"},
		{"generated name with suffix", "x = uc_alpha_1", true, "uc_alpha"},
		{"continuation spelling", "uc_deltat = 1", true, "uc_delta"},
		{"generated name at line start", "uc_pi = 3.14", true, "uc_pi"},
		{"incidental greek fragment", "integer :: AtomNumber", false, ""},
		{"inside identifier", "real :: my_uc_alpha", true, "uc_alpha"},
		{"glued to letter", "x = auc_pi", true, "uc_pi"},
		{"bare greek name", "alpha = beta", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.in, DefaultOptions())
			if !tt.collide {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrNamingCollision))

			var ce *CollisionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.reserve, ce.Name)
			assert.Contains(t, err.Error(), tt.reserve)
		})
	}
}

func TestTranslate_CollisionInsideLongerIdentifier(t *testing.T) {
	// my_uc_α would become my_uc_alpha and clash with the spelled-out name.
	_, err := Translate("real :: my_uc_α\nmy_uc_alpha = 1\n", DefaultOptions())
	require.Error(t, err)

	var ce *CollisionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "uc_alpha", ce.Name)
	assert.Equal(t, 2, ce.Line)
	assert.Equal(t, 4, ce.Column)
}

func TestTranslate_CollisionPosition(t *testing.T) {
	_, err := Translate("x = 1\n  β + uc_beta\n", DefaultOptions())
	require.Error(t, err)

	var ce *CollisionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Line)
	assert.Equal(t, 7, ce.Column)

	hints := errors.GetAllHints(err)
	require.NotEmpty(t, hints)
	assert.Contains(t, hints[0], "β")
	assert.Contains(t, hints[0], "uc_beta")
}

func TestTranslate_CollisionReturnsNoText(t *testing.T) {
	res, err := Translate("α = 1\nuc_alpha = 2\n", DefaultOptions())
	require.Error(t, err)
	assert.Empty(t, res.Text)
}

func TestTranslate_CollisionInComment(t *testing.T) {
	src := "x = 1 ! was uc_alpha"

	_, err := Translate(src, DefaultOptions())
	assert.NoError(t, err, "preserved comments are not checked")

	opts := DefaultOptions()
	opts.PreserveComments = false
	_, err = Translate(src, opts)
	assert.True(t, errors.Is(err, errors.ErrNamingCollision), "translated comments are code")
}

func TestTranslate_CustomPrefixCollision(t *testing.T) {
	opts := DefaultOptions()
	opts.IdentifierPrefix = "g_"

	_, err := Translate("uc_alpha = g_beta", opts)
	require.Error(t, err)

	var ce *CollisionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "g_beta", ce.Name)
}

// A hand-written prefix followed by a Greek letter translates to the
// generated spelling. The check runs on source text, which does not contain
// it, so this passes.
func TestTranslate_ContinuationRecreatesGeneratedName(t *testing.T) {
	got, err := TranslateText("uc_α = 1", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "uc_alpha = 1", got)
}

func TestTranslate_Normalize(t *testing.T) {
	src := "\u2126 = 1" // OHM SIGN

	plain, err := Translate(src, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, src, plain.Text)
	require.Len(t, plain.Unmapped, 1)
	assert.Equal(t, '\u2126', plain.Unmapped[0].Rune)

	opts := DefaultOptions()
	opts.Normalize = true
	norm, err := Translate(src, opts)
	require.NoError(t, err)
	assert.Equal(t, "uc_omega = 1", norm.Text)
	assert.Empty(t, norm.Unmapped)
}

func TestTranslate_NormalizeLeavesCommentBytes(t *testing.T) {
	opts := DefaultOptions()
	opts.Normalize = true

	got, err := TranslateText("x = 1 ! e\u0301", opts)
	require.NoError(t, err)
	assert.Equal(t, "x = 1 ! e\u0301", got)
}

func TestTranslate_Unmapped(t *testing.T) {
	res, err := Translate("a = 1\nx = ∑ b\n", DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Unmapped, 1)
	assert.Equal(t, Unmapped{Line: 2, Column: 5, Rune: '∑'}, res.Unmapped[0])
	assert.Equal(t, "2:5 '∑' (U+2211)", res.Unmapped[0].String())
}

func TestTranslate_Strict(t *testing.T) {
	opts := DefaultOptions()
	opts.Strict = true

	t.Run("fails on residual non-ascii", func(t *testing.T) {
		res, err := Translate("x = ∑ b", opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUnmappedSymbol))
		assert.Empty(t, res.Text)
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("comments may keep non-ascii", func(t *testing.T) {
		got, err := TranslateText("x = α ! ∑ über", opts)
		require.NoError(t, err)
		assert.Equal(t, "x = uc_alpha ! ∑ über", got)
	})
}

func TestTranslate_CountsReplacements(t *testing.T) {
	res, err := Translate("α × T₁₂\n", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Replaced)
	assert.Equal(t, 1, res.Lines)
}
