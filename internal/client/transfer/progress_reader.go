package transfer

import "io"

// progressReader counts the bytes pulled out of reader by the HTTP transport.
type progressReader struct {
	reader   io.ReadSeeker
	size     int64
	read     int64
	callback func(processed, total int64)
}

func newProgressReader(reader io.ReadSeeker, size int64, callback func(processed, total int64)) *progressReader {
	return &progressReader{reader: reader, size: size, callback: callback}
}

func (pr *progressReader) Seek(offset int64, whence int) (n int64, err error) {
	n, err = pr.reader.Seek(offset, whence)
	if err == nil {
		pr.read = n
		pr.invokeCallback()
	}
	return
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pr.invokeCallback()
	}
	return
}

func (pr *progressReader) Len() int { return int(pr.size) }

func (pr *progressReader) invokeCallback() {
	if pr.callback != nil {
		pr.callback(pr.read, pr.size)
	}
}

// percentTracker turns byte counts into integer percentages, dropping
// repeats and anything lower than what was already reported.
type percentTracker struct {
	last int
	emit func(int)
}

func newPercentTracker(emit func(int)) *percentTracker {
	return &percentTracker{last: -1, emit: emit}
}

func (t *percentTracker) update(processed, total int64) {
	if total <= 0 {
		return
	}
	if processed > total {
		processed = total
	}
	pct := int(processed * 100 / total)
	if pct <= t.last {
		return
	}
	t.last = pct
	t.emit(pct)
}
