package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/pdfdrop/internal/client/queue"
)

// renderTasks prints the queue as a table. Rows are numbered from 1; the
// number is accepted by "remove".
func renderTasks(w io.Writer, tasks []queue.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "Queue is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSIZE\tSTATUS\tDETAIL")
	for i, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, t.File.Name(), humanize.Bytes(uint64(t.File.Size())), t.Status, detail(t))
	}
	_ = tw.Flush()
}

func detail(t queue.Task) string {
	switch t.Status {
	case queue.StatusUploading:
		return strconv.Itoa(t.Progress) + "%"
	case queue.StatusError:
		return t.Err
	default:
		return ""
	}
}

// progressPrinter is the queue sink used while "upload" runs. Progress is
// printed in steps of 10%.
type progressPrinter struct {
	w    io.Writer
	mu   sync.Mutex
	last map[string]int
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w, last: make(map[string]int)}
}

func (p *progressPrinter) TaskChanged(t queue.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch t.Status {
	case queue.StatusUploading:
		step := t.Progress / 10 * 10
		if prev, ok := p.last[t.ID]; ok && step <= prev {
			return
		}
		p.last[t.ID] = step
		fmt.Fprintf(p.w, "  %s %3d%%\n", t.File.Name(), step)
	case queue.StatusSuccess:
		delete(p.last, t.ID)
		fmt.Fprintf(p.w, "  %s uploaded\n", t.File.Name())
	case queue.StatusError:
		delete(p.last, t.ID)
		fmt.Fprintf(p.w, "  %s failed: %s\n", t.File.Name(), t.Err)
	}
}

func (p *progressPrinter) TaskRemoved(queue.Task) {}

func (p *progressPrinter) RunFinished(s queue.Summary) {
	fmt.Fprintf(p.w, "Upload finished: %s\n", s)
}
