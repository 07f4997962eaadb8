package relfs

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/wikidot-tools/relmk/relmkore"
)

// SubstLine replaces every line of File that matches Pattern with Text. All
// other lines, including their line terminators, stay byte for byte as they
// are. A file without a matching line is left untouched; that is reported as
// a warning but does not fail the task.
type SubstLine struct {
	File    string
	Pattern *regexp.Regexp
	Text    string
}

var _ relmkore.Operation = SubstLine{}

func (op SubstLine) Describe(*relmkore.Task, *relmkore.Env) string {
	return fmt.Sprintf("subst %s in %s", op.Pattern, op.File)
}

func (op SubstLine) Do(tr *relmkore.Trace, tk *relmkore.Task, _ *relmkore.Env) error {
	path := taskPath(tk, op.File)
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := bytes.SplitAfter(data, []byte{'\n'})
	var buf bytes.Buffer
	subst := 0
	for i, line := range lines {
		if i+1 == len(lines) && len(line) == 0 {
			break
		}
		content, eol := cutEOL(line)
		if op.Pattern.Match(content) {
			buf.WriteString(op.Text)
			buf.Write(eol)
			subst++
		} else {
			buf.Write(line)
		}
	}
	if subst == 0 {
		tr.Warn("no line matches `pattern` in `file`",
			`pattern`, op.Pattern.String(),
			`file`, path,
		)
		return nil
	}
	tr.Debug("substituted `lines` in `file`", `lines`, subst, `file`, path)
	return os.WriteFile(path, buf.Bytes(), st.Mode().Perm())
}

func cutEOL(line []byte) (content, eol []byte) {
	l := len(line)
	if l > 0 && line[l-1] == '\n' {
		l--
		if l > 0 && line[l-1] == '\r' {
			l--
		}
	}
	return line[:l], line[l:]
}
