package download

import (
	"fmt"
	"log/slog"
	"time"
)

// progress logs the bytes written so far, at most once per second.
type progress struct {
	logger    *slog.Logger
	written   int64
	total     int64
	startTime time.Time
	lastLog   time.Time
}

func (p *progress) add(n int) {
	p.written += int64(n)

	if time.Since(p.lastLog) >= time.Second {
		p.lastLog = time.Now()
		p.log("downloading")
	}
}

func (p *progress) log(msg string) {
	elapsed := time.Since(p.startTime)
	attrs := []any{
		"elapsed", elapsed.Round(time.Millisecond),
		"written", p.written,
		"total", p.total,
		"mbps", fmt.Sprintf("%.2f", float64(p.written)/elapsed.Seconds()/(1024*1024)),
	}
	if p.total > 0 {
		attrs = append(attrs, "progress", fmt.Sprintf("%.1f%%", float64(p.written)/float64(p.total)*100))
	}

	p.logger.Info(msg, attrs...)
}
