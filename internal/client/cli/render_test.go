package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/client/queue"
)

func TestRenderTasks(t *testing.T) {
	var buf bytes.Buffer
	renderTasks(&buf, nil)
	assert.Equal(t, "Queue is empty\n", buf.String())

	buf.Reset()
	renderTasks(&buf, []queue.Task{
		{ID: "1", File: &models.MemoryFile{FileName: "a.pdf", Data: make([]byte, 2048)}, Status: queue.StatusSuccess},
		{ID: "2", File: &models.MemoryFile{FileName: "b.pdf"}, Status: queue.StatusUploading, Progress: 40},
		{ID: "3", File: &models.MemoryFile{FileName: "c.pdf"}, Status: queue.StatusError, Err: "A file with this name already exists"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "STATUS")
	assert.Contains(t, lines[1], "a.pdf")
	assert.Contains(t, lines[1], "2.0 kB")
	assert.Contains(t, lines[1], "success")
	assert.Contains(t, lines[2], "40%")
	assert.Contains(t, lines[3], "A file with this name already exists")
}

func TestProgressPrinter_TenPercentSteps(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf)
	f := &models.MemoryFile{FileName: "r.pdf"}

	for _, pct := range []int{0, 3, 9, 10, 15, 19, 55, 100} {
		p.TaskChanged(queue.Task{ID: "x", File: f, Status: queue.StatusUploading, Progress: pct})
	}
	p.TaskChanged(queue.Task{ID: "x", File: f, Status: queue.StatusSuccess, Progress: 100})
	p.TaskChanged(queue.Task{ID: "y", File: f, Status: queue.StatusError, Err: "Upload failed with status 500"})
	p.TaskChanged(queue.Task{ID: "z", File: f, Status: queue.StatusPending})
	p.TaskRemoved(queue.Task{ID: "z"})
	p.RunFinished(queue.Summary{Succeeded: 1, Failed: 1})

	assert.Equal(t, strings.Join([]string{
		"  r.pdf   0%",
		"  r.pdf  10%",
		"  r.pdf  50%",
		"  r.pdf 100%",
		"  r.pdf uploaded",
		"  r.pdf failed: Upload failed with status 500",
		"Upload finished: 1 succeeded, 1 failed",
	}, "\n")+"\n", buf.String())
}
