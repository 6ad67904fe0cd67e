package cmd

import (
	"io"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// barProgress renders one mpb bar per transferred artifact.
type barProgress struct {
	progress *mpb.Progress
	mu       sync.Mutex
	bars     map[string]*mpb.Bar
}

func newBarProgress() *barProgress {
	return &barProgress{
		progress: mpb.New(mpb.WithWidth(60)),
		bars:     make(map[string]*mpb.Bar),
	}
}

func (p *barProgress) Track(name string, size int64, r io.Reader) io.Reader {
	bar := p.progress.AddBar(size,
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.CountersKibiByte(" | % .1f / % .1f"),
		),
	)

	p.mu.Lock()
	p.bars[name] = bar
	p.mu.Unlock()

	return bar.ProxyReader(r)
}

func (p *barProgress) Done(name string, err error) {
	p.mu.Lock()
	bar, ok := p.bars[name]
	delete(p.bars, name)
	p.mu.Unlock()
	if !ok {
		return
	}

	if err != nil {
		bar.Abort(false)
		return
	}
	// current becomes the total so empty files complete too
	bar.SetTotal(-1, true)
}

// Wait blocks until every bar has been rendered for the last time.
func (p *barProgress) Wait() {
	p.progress.Wait()
}
