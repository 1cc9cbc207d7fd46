package trimlines

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimLines(t *testing.T) {
	tests := []struct {
		name string
		give string
		opts []Option
		want string
	}{
		{
			name: "relative indent kept",
			give: "  hello\n    world\n",
			want: "hello\n  world",
		},
		{
			name: "outer blank lines removed, inner kept",
			give: "\n\n  foo\n\n  bar\n\n\n",
			want: "foo\n\nbar",
		},
		{
			name: "whitespace only",
			give: "   ",
			want: "",
		},
		{
			name: "no vertical trimming",
			give: "a\nb",
			opts: []Option{WithTrimVerticalStart(false), WithTrimVerticalEnd(false)},
			want: "a\nb",
		},
		{
			name: "keep leading blank lines",
			give: "\n\nfoo\n\n",
			opts: []Option{WithTrimVerticalStart(false)},
			want: "\n\nfoo",
		},
		{
			name: "keep trailing blank lines",
			give: "\n\nfoo\n\n",
			opts: []Option{WithTrimVerticalEnd(false)},
			want: "foo\n\n",
		},
		{
			name: "single character line is not re-indented",
			give: "    x",
			want: "x",
		},
		{
			name: "single character line among indented lines",
			give: "  ab\n      c\n    de",
			want: "ab\nc\n  de",
		},
		{
			name: "trailing whitespace removed",
			give: "  foo   \n    bar\t\t",
			want: "foo\n  bar",
		},
		{
			name: "tabs become spaces",
			give: "\tfoo\n\t\tbar",
			want: "foo\n bar",
		},
		{
			name: "mixed tabs and spaces counted literally",
			give: " \tfoo\n\t   bar",
			want: "foo\n  bar",
		},
		{
			name: "carriage returns are whitespace",
			give: "  foo\r\n    bar\r\n",
			want: "foo\n  bar",
		},
		{
			name: "non-breaking space counts as indent",
			give: "\u00a0\u00a0ab\n\u00a0\u00a0\u00a0\u00a0cd",
			want: "ab\n  cd",
		},
		{
			name: "indent counted in characters",
			give: "  héllo\n    wörld",
			want: "héllo\n  wörld",
		},
		{
			name: "re-indent disabled strips every line",
			give: "  hello\n    world\n",
			opts: []Option{WithTrimLeftToLeastIndent(false)},
			want: "hello\nworld",
		},
		{
			name: "re-indent disabled with irregular indent and vertical trimming",
			give: "\n   \n      one\n  two\n\n\t\t  three  \n \n",
			opts: []Option{WithTrimLeftToLeastIndent(false)},
			want: "one\ntwo\n\nthree",
		},
		{
			name: "least indent ignores blank lines",
			give: "    foo\n \n      bar",
			want: "foo\n\n  bar",
		},
		{
			name: "nothing to do",
			give: "foo\n  bar",
			want: "foo\n  bar",
		},
		{
			name: "empty",
			give: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimLines(tt.give, tt.opts...))
		})
	}
}

var allConfigs = func() []Config {
	var configs []Config
	for _, indent := range []bool{false, true} {
		for _, start := range []bool{false, true} {
			for _, end := range []bool{false, true} {
				configs = append(configs, Config{
					TrimLeftToLeastIndent: indent,
					TrimVerticalStart:     start,
					TrimVerticalEnd:       end,
				})
			}
		}
	}
	return configs
}()

var samples = []string{
	"  hello\n    world\n",
	"\n\n  foo\n\n  bar\n\n\n",
	"a\nb",
	"\n\nfoo\n\n",
	"    x",
	" a\n  bc\n\n   d\n",
	"\t\tfunc() {\n\t\t\treturn\n\t\t}\n",
	"  ab\n      c\n    de",
	"\r\n  foo\r\n\r\n",
}

func TestTrimLinesBlankInput(t *testing.T) {
	blanks := []string{"", " ", "\n", "\n\n\n", " \t\n\r\n  ", " \n\v\f"}

	for _, c := range allConfigs {
		for _, s := range blanks {
			assert.Equal(t, "", c.Trim(s), "config %s, input %q", c, s)
		}
	}
}

func TestTrimLinesIdempotent(t *testing.T) {
	c := DefaultConfig()
	for _, s := range samples {
		once := c.Trim(s)
		assert.Equal(t, once, c.Trim(once), "input %q", s)
	}
}

func TestTrimLinesLeastIndentIsZero(t *testing.T) {
	for _, s := range samples {
		out := TrimLines(s)

		least := -1
		for _, line := range strings.Split(out, "\n") {
			if line == "" {
				continue
			}
			if n := indentOf(line); least < 0 || n < least {
				least = n
			}
		}
		assert.Equal(t, 0, least, "input %q", s)
	}
}

func TestTrimLinesWithoutIndentStripsLines(t *testing.T) {
	c := NewConfig(
		WithTrimLeftToLeastIndent(false),
		WithTrimVerticalStart(false),
		WithTrimVerticalEnd(false),
	)

	for _, s := range samples {
		in := strings.Split(s, "\n")
		out := strings.Split(c.Trim(s), "\n")
		require.Len(t, out, len(in), "input %q", s)

		for i := range in {
			assert.Equal(t, strings.TrimSpace(in[i]), out[i])
		}
	}
}

func TestTrimLinesPreservesLineCount(t *testing.T) {
	for _, indent := range []bool{false, true} {
		c := Config{TrimLeftToLeastIndent: indent}
		for _, s := range samples {
			got := strings.Count(c.Trim(s), "\n")
			assert.Equal(t, strings.Count(s, "\n"), got, "config %s, input %q", c, s)
		}
	}
}

func TestNewConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), NewConfig())
	assert.Equal(t, Config{TrimLeftToLeastIndent: true, TrimVerticalEnd: true}, NewConfig(WithTrimVerticalStart(false)))

	// later options win
	c := NewConfig(WithTrimVerticalEnd(false), WithTrimVerticalEnd(true))
	assert.True(t, c.TrimVerticalEnd)
}

func TestConfigString(t *testing.T) {
	assert.Equal(t, "indent=true,start=true,end=true", DefaultConfig().String())
	assert.Equal(t, "indent=false,start=true,end=false", Config{TrimVerticalStart: true}.String())
}

func TestTrimLinesConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range samples {
				assert.Equal(t, TrimLines(TrimLines(s)), TrimLines(s))
			}
		}()
	}
	wg.Wait()
}
