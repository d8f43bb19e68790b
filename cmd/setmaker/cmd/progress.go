package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// passProgress draws one progress bar per scan pass.
type passProgress struct {
	out  io.Writer
	rows int64
	bar  *progressbar.ProgressBar
}

func newPassProgress(out io.Writer, rows int) *passProgress {
	return &passProgress{out: out, rows: int64(rows)}
}

func (p *passProgress) StartPass(pass, passes int) {
	p.bar = progressbar.NewOptions64(p.rows,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription(fmt.Sprintf("pass %d/%d", pass, passes)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.out) }),
	)
}

func (p *passProgress) Advance(rows int) {
	if p.bar != nil {
		_ = p.bar.Add(rows)
	}
}

func (p *passProgress) FinishPass() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
