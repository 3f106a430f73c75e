package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikaelmello/goicmp/core"
)

// printer renders the progress of a run.
type printer interface {
	onStart(host string, payloadSize int)
	// onResult receives every result along with the latest results, oldest first.
	onResult(res core.PingResult, window []core.PingResult)
	onEnd(host string, stats core.Statistics, elapsed time.Duration)
}

// stdPrinter prints one line per result, like the classic ping utility.
type stdPrinter struct {
	w io.Writer
}

func newStdPrinter(w io.Writer) *stdPrinter {
	return &stdPrinter{w: w}
}

func (p *stdPrinter) onStart(host string, payloadSize int) {
	printOnStart(p.w, host, payloadSize)
}

func (p *stdPrinter) onResult(res core.PingResult, _ []core.PingResult) {
	switch r := res.(type) {
	case core.Success:
		fmt.Fprintf(p.w, "%d bytes from %s: icmp_seq=%d time=%s\n",
			r.PacketSize, r.Address, r.Sequence, r.RTT.Truncate(time.Microsecond))
	case core.Failed:
		fmt.Fprintf(p.w, "From %s: icmp_seq=%d %s\n", r.Address, r.Sequence, r.Error())
	}
}

func (p *stdPrinter) onEnd(host string, stats core.Statistics, elapsed time.Duration) {
	printOnEnd(p.w, host, stats, elapsed)
}

// dotsPrinter redraws a single line with a mark per cached result: ! for a reply and .
// for a failure.
type dotsPrinter struct {
	w     io.Writer
	width int
}

func newDotsPrinter(w io.Writer) *dotsPrinter {
	return &dotsPrinter{w: w}
}

func (p *dotsPrinter) onStart(host string, payloadSize int) {
	printOnStart(p.w, host, payloadSize)
}

func (p *dotsPrinter) onResult(_ core.PingResult, window []core.PingResult) {
	var b strings.Builder
	for _, res := range window {
		if _, ok := res.(core.Success); ok {
			b.WriteByte('!')
		} else {
			b.WriteByte('.')
		}
	}
	p.width = b.Len()
	fmt.Fprintf(p.w, "\r%s", b.String())
}

func (p *dotsPrinter) onEnd(host string, stats core.Statistics, elapsed time.Duration) {
	if p.width > 0 {
		fmt.Fprintln(p.w)
	}
	printOnEnd(p.w, host, stats, elapsed)
}

func printOnStart(w io.Writer, host string, payloadSize int) {
	fmt.Fprintf(w, "PING %s %d bytes of data\n", host, payloadSize)
}

func printOnEnd(w io.Writer, host string, stats core.Statistics, elapsed time.Duration) {
	fmt.Fprintln(w)

	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

	fmt.Fprintf(w, "--- %s ping statistics ---\n", host)
	fmt.Fprintf(w, "%d packets transmitted, %d received, %.0f%% packet loss, time %s\n",
		stats.Sent, stats.Received, stats.PacketLoss()*100, elapsed.Truncate(time.Millisecond))
	if stats.Received > 0 {
		fmt.Fprintf(w, "rtt min/avg/max/mdev = %.3f/%.3f/%.3f/%.3f ms\n",
			ms(stats.Min), ms(stats.Avg()), ms(stats.Max), ms(stats.MDev()))
	}
}
